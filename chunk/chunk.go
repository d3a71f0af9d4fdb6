// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package chunk implements the chunk algebra: the tagged-union Chunk
// variants (Empty, Length, Bytes, Fields, Slice, Sequence), the
// mutability/completeness/correctness/representation flags every chunk
// carries, the iterator-based peek/slice engine, SequenceChunk flattening
// and merging, and the serializer registry that converts between typed
// chunks and wire bytes.
//
// Dispatch is by type switch on the closed Kind enum rather than by a
// deep virtual hierarchy, per the variant-hierarchy design note: adding a
// seventh chunk kind is not supported without touching every switch in
// this package, which is deliberate — the set of chunk shapes is closed.
package chunk

import (
	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunkerr"
)

const component = "chunk"

// Chunk represents a contiguous region of protocol data. It is
// implemented by exactly six types: *EmptyChunk, *LengthChunk,
// *BytesChunk, *FieldsChunk, *SliceChunk and *SequenceChunk.
type Chunk interface {
	// Kind reports which of the six variants this is.
	Kind() Kind

	// Len reports the chunk's length in bits.
	Len() bit.Length

	// Flags reports the chunk's current status flags.
	Flags() Flags

	// MakeImmutable transitions this chunk, and everything reachable
	// from it, to immutable. It is a one-way, idempotent operation.
	MakeImmutable()
}

// AssertMutable panics with a ProgrammingError if c is immutable. Every
// mutation method in this package calls this first.
func AssertMutable(c Chunk) {
	if c.Flags().Immutable {
		panic(chunkerr.Programming(component, "cannot mutate an immutable %s chunk", c.Kind()))
	}
}

// shareState is embedded by every chunk kind that supports in-place
// mutation (BytesChunk, LengthChunk, FieldsChunk, SequenceChunk). It
// implements the copy-on-write detection called for by §3.1: once a
// mutable chunk is reachable from more than one place — inserted into a
// SequenceChunk, or wrapped by a SliceChunk — MarkShared flips a flag
// shared by every reference to this chunk's identity, and mutation
// methods clone before mutating rather than corrupt the other reference.
//
// The flag is monotonic: nothing ever unmarks it. That is a deliberately
// conservative approximation of true reference counting (which Go's GC
// does not expose) — a chunk that was briefly shared and then dropped
// back to one owner is still treated as shared, trading a possible extra
// clone for never mutating out from under a reference we lost track of.
type shareState struct {
	shared *bool
}

func newShareState() shareState {
	v := false
	return shareState{shared: &v}
}

func (s shareState) markShared() {
	if s.shared != nil {
		*s.shared = true
	}
}

func (s shareState) isShared() bool {
	return s.shared != nil && *s.shared
}

// MarkShared marks c as reachable from more than one place, if c is a
// kind that tracks sharing. Called by SequenceChunk/SliceChunk
// constructors when they take a reference to an existing mutable chunk.
func MarkShared(c Chunk) {
	switch v := c.(type) {
	case *BytesChunk:
		v.share.markShared()
	case *LengthChunk:
		v.share.markShared()
	case *FieldsChunk:
		v.share.markShared()
	case *SequenceChunk:
		v.share.markShared()
	}
}
