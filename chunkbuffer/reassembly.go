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

package chunkbuffer

import (
	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunk"
	"github.com/pktchunk/pktchunk/chunkerr"
)

// ReassemblyBuffer is a fixed-length ChunkBuffer plus the total length
// it expects to eventually hold. Used to reassemble a fragmented
// datagram whose total size is known up front (e.g. from an IP header).
type ReassemblyBuffer struct {
	buf   *ChunkBuffer
	total bit.Length
}

// NewReassemblyBuffer returns an empty ReassemblyBuffer expecting total
// bits in all.
func NewReassemblyBuffer(total bit.Length) *ReassemblyBuffer {
	return &ReassemblyBuffer{buf: New(), total: total}
}

// Replace writes a fragment at offset.
func (r *ReassemblyBuffer) Replace(offset bit.Length, c chunk.Chunk) {
	r.buf.Replace(offset, c)
}

// IsComplete reports whether a single region now covers [0, total).
func (r *ReassemblyBuffer) IsComplete() bool {
	return r.buf.GetNumRegions() == 1 &&
		r.buf.GetRegionStartOffset(0) == 0 &&
		r.buf.GetRegionData(0).Len() == r.total
}

// GetData returns the fully reassembled chunk. Callers must check
// IsComplete first; calling it before completion panics.
func (r *ReassemblyBuffer) GetData() chunk.Chunk {
	if !r.IsComplete() {
		panic(chunkerr.Programming(component, "GetData called on an incomplete ReassemblyBuffer"))
	}
	return r.buf.GetRegionData(0)
}
