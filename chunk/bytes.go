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

// BytesChunk is an owned, ordered sequence of octets. Its length is
// always byte-aligned.
type BytesChunk struct {
	data  []byte
	flags Flags
	share shareState
}

// NewBytesChunk returns a mutable BytesChunk owning a copy of b.
func NewBytesChunk(b []byte) *BytesChunk {
	owned := make([]byte, len(b))
	copy(owned, b)
	return &BytesChunk{data: owned, share: newShareState()}
}

// wrapBytesChunk builds a BytesChunk that takes ownership of b without
// copying. Used internally once the caller can guarantee b is not
// aliased elsewhere (e.g. freshly allocated by the peek engine).
func wrapBytesChunk(b []byte, flags Flags) *BytesChunk {
	return &BytesChunk{data: b, flags: flags, share: newShareState()}
}

func (c *BytesChunk) Kind() Kind      { return KindBytes }
func (c *BytesChunk) Len() bit.Length { return bit.Bytes(int64(len(c.data))) }
func (c *BytesChunk) Flags() Flags    { return c.flags }

// Bytes returns the chunk's octets. The caller must not mutate the
// returned slice; use SetBytes to change content.
func (c *BytesChunk) Bytes() []byte {
	return c.data
}

func (c *BytesChunk) MakeImmutable() {
	c.flags.Immutable = true
}

func (c *BytesChunk) clone() *BytesChunk {
	owned := make([]byte, len(c.data))
	copy(owned, c.data)
	return &BytesChunk{data: owned, flags: c.flags, share: newShareState()}
}

// SetBytes replaces c's content, copy-on-write. Returns the chunk the
// caller should keep using (either c itself, or a fresh clone if c was
// shared).
func (c *BytesChunk) SetBytes(b []byte) *BytesChunk {
	AssertMutable(c)
	target := c
	if c.share.isShared() {
		target = c.clone()
	}
	owned := make([]byte, len(b))
	copy(owned, b)
	target.data = owned
	return target
}

// window returns the byte-aligned slice [offset, offset+length) of c's
// data, without copying when it spans the whole chunk.
func (c *BytesChunk) window(offsetBits, lengthBits bit.Length) *BytesChunk {
	if offsetBits == 0 && lengthBits == c.Len() {
		return c
	}
	if !offsetBits.Whole() || !lengthBits.Whole() {
		panic(chunkerr.Programming(component, "BytesChunk window [%d,+%d) is not byte-aligned", offsetBits, lengthBits))
	}
	off, ln := offsetBits.Bytes(), lengthBits.Bytes()
	out := make([]byte, ln)
	copy(out, c.data[off:off+ln])
	return wrapBytesChunk(out, c.flags)
}
