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

// Package chunkqueue implements ChunkQueue: a byte-stream FIFO built on
// the same chunk algebra as Packet, with enqueue at the back and
// consume at the front.
package chunkqueue

import (
	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunk"
	"github.com/pktchunk/pktchunk/chunkerr"
)

const component = "chunkqueue"

// ChunkQueue is a FIFO of bytes produced by enqueuing chunks at the back
// and consuming them at the front. It is internally a SequenceChunk
// walked by a single Forward chunk.Iterator, per §3.3; popping across a
// fragment boundary triggers the same reassembly PeekRange already
// performs for Packet.
type ChunkQueue struct {
	contents chunk.Chunk
	front    chunk.Iterator
}

// New returns an empty ChunkQueue.
func New() *ChunkQueue {
	return &ChunkQueue{contents: chunk.NewEmptyChunk(), front: chunk.NewIterator(chunk.Forward, 0)}
}

// Push appends c, which must already be immutable, to the back of the
// queue.
func (q *ChunkQueue) Push(c chunk.Chunk) {
	if !c.Flags().Immutable {
		panic(chunkerr.Programming(component, "pushed chunk must be immutable"))
	}
	if _, ok := q.contents.(*chunk.EmptyChunk); ok {
		q.contents = c
		return
	}
	if merged, ok := chunk.TryMerge(q.contents, c); ok {
		q.contents = merged
		return
	}
	q.contents = chunk.NewSequenceChunk(q.contents, c)
}

// Len reports the number of unconsumed bits in the queue.
func (q *ChunkQueue) Len() bit.Length {
	return q.contents.Len() - q.front.Position
}

// resolveLength substitutes bit.ToEnd with the number of unconsumed bits
// remaining in the queue.
func (q *ChunkQueue) resolveLength(length bit.Length) bit.Length {
	if length.IsToEnd() {
		return q.Len()
	}
	return length
}

// Has reports whether the next length bits can be resolved as T,
// without consuming them. length may be bit.ToEnd.
func Has[T chunk.FieldsPayload](q *ChunkQueue, length bit.Length) bool {
	length = q.resolveLength(length)
	if length > q.Len() {
		return false
	}
	_, ok := chunk.PeekAs[T](q.contents, q.front.Position, length)
	return ok
}

// Pop resolves the next length bits as T and, on success, advances the
// front iterator by length. length may be bit.ToEnd.
func Pop[T chunk.FieldsPayload](q *ChunkQueue, length bit.Length) (T, bool) {
	var zero T
	length = q.resolveLength(length)
	if length > q.Len() {
		return zero, false
	}
	v, ok := chunk.PeekAs[T](q.contents, q.front.Position, length)
	if ok {
		q.front = q.front.Advance(length, -1)
	}
	return v, ok
}

// PopBytes consumes and returns the next length bits as raw bytes,
// regardless of their underlying chunk structure. length may be
// bit.ToEnd. Routed through chunk.PeekNext, per §3.3, so the front
// iterator keeps its SequenceChunk resume hint across fragment
// boundaries and advances by the bits actually consumed.
func (q *ChunkQueue) PopBytes(length bit.Length) ([]byte, error) {
	length = q.resolveLength(length)
	if length > q.Len() {
		return nil, chunkerr.Unsupported(component, "PopBytes(%d): only %d bits available", length, q.Len())
	}
	sub, it := chunk.PeekNext(q.contents, q.front, length)
	b, err := chunk.ToBytes(sub)
	if err != nil {
		return nil, err
	}
	q.front = it
	return b, nil
}

// Compact discards everything already consumed, resetting the front
// iterator to 0. It mirrors Packet.RemovePoppedHeaders.
func (q *ChunkQueue) Compact() {
	if q.front.Position == 0 {
		return
	}
	q.contents = chunk.PeekRange(q.contents, q.front.Position, q.contents.Len()-q.front.Position)
	q.front = chunk.NewIterator(chunk.Forward, 0)
}
