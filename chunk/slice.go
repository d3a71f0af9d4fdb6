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

package chunk

import (
	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunkerr"
)

// SliceChunk is a read-only view of a sub-range of another chunk,
// avoiding a copy when the underlying kind has no cheaper native way to
// represent the window (BytesChunk and LengthChunk windows do not need
// one — see their own window/WithLength methods).
type SliceChunk struct {
	base   Chunk
	offset bit.Length
	length bit.Length
	flags  Flags
}

// NewSliceChunk returns a view of base covering [offset, offset+length).
// It applies two simplifications so SliceChunk nesting never grows
// unboundedly deep:
//
//   - a view spanning the whole of base returns base itself;
//   - a view of a view composes offsets and references the innermost
//     base directly, rather than wrapping a SliceChunk in a SliceChunk.
func NewSliceChunk(base Chunk, offset, length bit.Length) Chunk {
	if offset < 0 || length < 0 || offset+length > base.Len() {
		panic(chunkerr.Programming(component, "SliceChunk range [%d,+%d) out of bounds for length %d", offset, length, base.Len()))
	}
	if offset == 0 && length == base.Len() {
		return base
	}
	if inner, ok := base.(*SliceChunk); ok {
		offset += inner.offset
		base = inner.base
	}
	MarkShared(base)
	return &SliceChunk{base: base, offset: offset, length: length, flags: base.Flags()}
}

func (c *SliceChunk) Kind() Kind      { return KindSlice }
func (c *SliceChunk) Len() bit.Length { return c.length }
func (c *SliceChunk) Flags() Flags    { return c.flags }

// Base returns the chunk this slice views, and the [offset, offset+length)
// window it covers within that chunk.
func (c *SliceChunk) Base() (base Chunk, offset, length bit.Length) {
	return c.base, c.offset, c.length
}

// MakeImmutable makes both c and the chunk it views immutable: since the
// view shares storage with base, mutating base out from under an
// outstanding SliceChunk would be the same hazard COW guards against
// elsewhere.
func (c *SliceChunk) MakeImmutable() {
	c.flags.Immutable = true
	c.base.MakeImmutable()
}
