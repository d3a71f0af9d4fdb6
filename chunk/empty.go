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

import "github.com/pktchunk/pktchunk/bit"

// EmptyChunk is the zero-length neutral element. Peeking any chunk for
// length 0 always returns one, regardless of the requested type.
type EmptyChunk struct {
	flags Flags
}

// NewEmptyChunk returns an immutable, zero-length chunk.
func NewEmptyChunk() *EmptyChunk {
	return &EmptyChunk{flags: Flags{Immutable: true}}
}

func (c *EmptyChunk) Kind() Kind      { return KindEmpty }
func (c *EmptyChunk) Len() bit.Length { return 0 }
func (c *EmptyChunk) Flags() Flags    { return c.flags }

func (c *EmptyChunk) MakeImmutable() {
	c.flags.Immutable = true
}
