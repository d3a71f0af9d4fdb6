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
	"github.com/pktchunk/pktchunk/common"
)

// LengthChunk is a placeholder of known length whose contents are
// unspecified: it serializes as its fill byte repeated across its byte
// length.
type LengthChunk struct {
	length bit.Length
	fill   byte
	flags  Flags
	share  shareState
}

// NewLengthChunk returns a mutable LengthChunk of the given length, using
// the module's default fill byte.
func NewLengthChunk(length bit.Length) *LengthChunk {
	return NewLengthChunkFill(length, common.DefaultFillByte)
}

// NewLengthChunkFill returns a mutable LengthChunk with an explicit fill
// byte.
func NewLengthChunkFill(length bit.Length, fill byte) *LengthChunk {
	if length < 0 {
		panic(chunkerr.Programming(component, "negative LengthChunk length %d", length))
	}
	return &LengthChunk{length: length, fill: fill, share: newShareState()}
}

func (c *LengthChunk) Kind() Kind      { return KindLength }
func (c *LengthChunk) Len() bit.Length { return c.length }
func (c *LengthChunk) Flags() Flags    { return c.flags }
func (c *LengthChunk) Fill() byte      { return c.fill }

func (c *LengthChunk) MakeImmutable() {
	c.flags.Immutable = true
}

// clone returns a private copy of c, used by copy-on-write mutation.
func (c *LengthChunk) clone() *LengthChunk {
	return &LengthChunk{length: c.length, fill: c.fill, flags: c.flags, share: newShareState()}
}

// WithLength returns a chunk of the given sub-length: c itself when the
// length is unchanged, otherwise a new LengthChunk with c's fill byte and
// flags. c is never modified. Used by the peek engine to produce
// LengthChunk windows.
func (c *LengthChunk) WithLength(length bit.Length) *LengthChunk {
	if length == c.length {
		return c
	}
	out := &LengthChunk{length: length, fill: c.fill, flags: c.flags, share: newShareState()}
	return out
}

// SetLength grows or shrinks c in place, copy-on-write. Used when two
// adjacent LengthChunks merge by length addition.
func (c *LengthChunk) SetLength(length bit.Length) *LengthChunk {
	AssertMutable(c)
	target := c
	if c.share.isShared() {
		target = c.clone()
	}
	target.length = length
	return target
}
