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
)

// ReorderBuffer tracks an expected-offset cursor over a ChunkBuffer,
// the way the teacher's tcpStream tracked lastAck against an incoming
// segment's sequence number — except here out-of-order writes are kept
// rather than dropped, and released once the gap in front of them
// closes.
type ReorderBuffer struct {
	buf            *ChunkBuffer
	expectedOffset bit.Length
}

// NewReorderBuffer returns a ReorderBuffer whose first expected byte is
// at initialOffset (e.g. a stream's initial sequence number).
func NewReorderBuffer(initialOffset bit.Length) *ReorderBuffer {
	return &ReorderBuffer{buf: New(), expectedOffset: initialOffset}
}

// ExpectedOffset returns the cursor: the offset popData will next try
// to extend from. It only ever increases.
func (r *ReorderBuffer) ExpectedOffset() bit.Length {
	return r.expectedOffset
}

// Replace writes c at offset into the underlying ChunkBuffer, whether
// or not offset is currently reachable from ExpectedOffset. Data at or
// entirely before the cursor is redundant (the TCP "already acked"
// case) and is written anyway; PopData simply will not re-emit it: once
// ExpectedOffset has passed offset+c.Len(), the popped prefix no longer
// reaches back into this region.
func (r *ReorderBuffer) Replace(offset bit.Length, c chunk.Chunk) {
	r.buf.Replace(offset, c)
}

// PopData returns the contiguous run of bytes starting at ExpectedOffset,
// if the region covering it exists, and advances ExpectedOffset past
// it. It returns nil, false if no region currently starts at or before
// ExpectedOffset and extends past it.
func (r *ReorderBuffer) PopData() (chunk.Chunk, bool) {
	for i := 0; i < r.buf.GetNumRegions(); i++ {
		start := r.buf.GetRegionStartOffset(i)
		data := r.buf.GetRegionData(i)
		end := start + data.Len()
		if start > r.expectedOffset {
			return nil, false
		}
		if end <= r.expectedOffset {
			continue
		}
		out := chunk.PeekRange(data, r.expectedOffset-start, end-r.expectedOffset)
		r.expectedOffset = end
		r.buf.Clear(start, data.Len())
		return out, true
	}
	return nil, false
}
