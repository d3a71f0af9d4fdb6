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

// Package packet implements Packet: a root content chunk walked from
// both ends by independent header-pop and trailer-pop offsets, grounded
// on the same prepend/peek/pop vocabulary the chunk package exposes.
package packet

import (
	"github.com/google/uuid"

	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunk"
	"github.com/pktchunk/pktchunk/chunkerr"
)

const component = "packet"

// Packet owns a single root chunk (conceptually a SequenceChunk built up
// by prepend/append) plus two chunk.Iterators walking in from either
// end: headerIt grows forward as callers pop from the front, trailerIt
// grows as a from-the-end distance as they pop from the back. Both
// start at position zero. Per §3.3, these iterators — not bare
// bit.Length offsets — are the traversal vocabulary every header/
// trailer pop goes through.
//
// contents becomes immutable the moment a caller calls MakeImmutable;
// until then it is built up freely by prepend/append, following the
// lifecycle of INET's Packet: assembly and the immutability transition
// are independent steps, not implied by each push.
type Packet struct {
	id        uuid.UUID
	contents  chunk.Chunk
	headerIt  chunk.Iterator
	trailerIt chunk.Iterator
}

// New returns an empty Packet.
func New() *Packet {
	return &Packet{
		id:        uuid.New(),
		contents:  chunk.NewEmptyChunk(),
		headerIt:  chunk.NewIterator(chunk.Forward, 0),
		trailerIt: chunk.NewIterator(chunk.Backward, 0),
	}
}

// ID returns the debug-correlation identifier assigned to this Packet at
// construction. It has no wire meaning; it exists so two log lines about
// "the same packet" can be told apart from two about different ones.
func (p *Packet) ID() uuid.UUID { return p.id }

func (p *Packet) assertFrontFree(op string) {
	if p.headerIt.Position != 0 {
		panic(chunkerr.Programming(component, "%s requires the header-pop offset to be 0, got %d", op, p.headerIt.Position))
	}
}

func (p *Packet) assertBackFree(op string) {
	if p.trailerIt.Position != 0 {
		panic(chunkerr.Programming(component, "%s requires the trailer-pop offset to be 0, got %d", op, p.trailerIt.Position))
	}
}

func assertChunkImmutable(c chunk.Chunk) {
	if !c.Flags().Immutable {
		panic(chunkerr.Programming(component, "pushed chunk must be immutable"))
	}
}

// Prepend inserts c at the front of the contents. c must already be
// immutable; the header-pop offset must be 0.
func (p *Packet) Prepend(c chunk.Chunk) {
	assertChunkImmutable(c)
	p.assertFrontFree("prepend")
	p.contents = prependChunk(p.contents, c)
}

// Append inserts c at the back of the contents. c must already be
// immutable; the trailer-pop offset must be 0.
func (p *Packet) Append(c chunk.Chunk) {
	assertChunkImmutable(c)
	p.assertBackFree("append")
	p.contents = appendChunk(p.contents, c)
}

// PushHeader is an alias for Prepend.
func (p *Packet) PushHeader(c chunk.Chunk) { p.Prepend(c) }

// PushTrailer is an alias for Append.
func (p *Packet) PushTrailer(c chunk.Chunk) { p.Append(c) }

func prependChunk(contents, c chunk.Chunk) chunk.Chunk {
	if _, ok := contents.(*chunk.EmptyChunk); ok {
		return c
	}
	if merged, ok := chunk.TryMerge(c, contents); ok {
		return merged
	}
	return chunk.NewSequenceChunk(c, contents)
}

func appendChunk(contents, c chunk.Chunk) chunk.Chunk {
	if _, ok := contents.(*chunk.EmptyChunk); ok {
		return c
	}
	if merged, ok := chunk.TryMerge(contents, c); ok {
		return merged
	}
	return chunk.NewSequenceChunk(contents, c)
}

// MakeImmutable transitions the packet's contents, and everything
// reachable from it, to immutable. Dup is only cheap once this has been
// called.
func (p *Packet) MakeImmutable() {
	p.contents.MakeImmutable()
}

// GetDataLength returns the length of the region between the two
// iterators: the data not yet popped as header or trailer.
func (p *Packet) GetDataLength() bit.Length {
	return p.GetPacketLength() - p.headerIt.Position - p.trailerIt.Position
}

// GetPacketLength returns the total length of the contents, regardless
// of iterator position.
func (p *Packet) GetPacketLength() bit.Length {
	return p.contents.Len()
}

func (p *Packet) GetHeaderPopOffset() bit.Length  { return p.headerIt.Position }
func (p *Packet) GetTrailerPopOffset() bit.Length { return p.trailerIt.Position }

func (p *Packet) SetHeaderPopOffset(offset bit.Length) {
	if offset < 0 || offset > p.GetPacketLength()-p.trailerIt.Position {
		panic(chunkerr.Programming(component, "header-pop offset %d out of range", offset))
	}
	p.headerIt = p.headerIt.Seek(offset)
}

func (p *Packet) SetTrailerPopOffset(offset bit.Length) {
	if offset < 0 || offset > p.GetPacketLength()-p.headerIt.Position {
		panic(chunkerr.Programming(component, "trailer-pop offset %d out of range", offset))
	}
	p.trailerIt = p.trailerIt.Seek(offset)
}

// PeekAt peeks [offset, offset+length) of the contents without regard to
// either iterator.
func (p *Packet) PeekAt(offset, length bit.Length) chunk.Chunk {
	return chunk.PeekRange(p.contents, offset, length)
}

// PeekAtAs is the typed form of PeekAt.
func PeekAtAs[T chunk.FieldsPayload](p *Packet, offset, length bit.Length) (T, bool) {
	return chunk.PeekAs[T](p.contents, offset, length)
}

// resolveHeaderLength substitutes bit.ToEnd with the number of bits
// remaining from the header-pop offset to the end of the packet, so
// every header method below can advance headerIt by a concrete amount.
func (p *Packet) resolveHeaderLength(length bit.Length) bit.Length {
	if length.IsToEnd() {
		return p.GetPacketLength() - p.headerIt.Position
	}
	return length
}

// resolveTrailerLength is resolveHeaderLength's trailer-side equivalent.
func (p *Packet) resolveTrailerLength(length bit.Length) bit.Length {
	if length.IsToEnd() {
		return p.GetPacketLength() - p.trailerIt.Position
	}
	return length
}

// PeekHeader peeks length bits starting at the header-pop offset,
// without advancing it. length may be bit.ToEnd. Routed through
// chunk.PeekNext so a read-only peek still benefits from headerIt's
// current resume hint, even though the hint it returns is discarded
// here rather than stored back.
func (p *Packet) PeekHeader(length bit.Length) chunk.Chunk {
	result, _ := chunk.PeekNext(p.contents, p.headerIt, p.resolveHeaderLength(length))
	return result
}

// PeekHeaderAs is the typed form of PeekHeader.
func PeekHeaderAs[T chunk.FieldsPayload](p *Packet, length bit.Length) (T, bool) {
	return PeekAtAs[T](p, p.headerIt.Position, p.resolveHeaderLength(length))
}

// PopHeader peeks length bits at the header-pop offset and, on success,
// advances it by the number of bits actually consumed — which may be
// less than length if the request overran the packet and came back
// shortened and Incomplete. length may be bit.ToEnd.
func (p *Packet) PopHeader(length bit.Length) chunk.Chunk {
	result, it := chunk.PeekNext(p.contents, p.headerIt, p.resolveHeaderLength(length))
	p.headerIt = it
	return result
}

// PopHeaderAs is the typed form of PopHeader. The iterator advances by
// length only when the peek actually resolves to T.
func PopHeaderAs[T chunk.FieldsPayload](p *Packet, length bit.Length) (T, bool) {
	length = p.resolveHeaderLength(length)
	v, ok := PeekHeaderAs[T](p, length)
	if ok {
		p.headerIt = p.headerIt.Advance(length, -1)
	}
	return v, ok
}

// PeekTrailer peeks length bits ending at the trailer-pop offset from
// the back, without advancing it. length may be bit.ToEnd, meaning
// everything from the trailer-pop offset to the start of the packet.
func (p *Packet) PeekTrailer(length bit.Length) chunk.Chunk {
	result, _ := chunk.PeekNext(p.contents, p.trailerIt, p.resolveTrailerLength(length))
	return result
}

// PeekTrailerAs is the typed form of PeekTrailer.
func PeekTrailerAs[T chunk.FieldsPayload](p *Packet, length bit.Length) (T, bool) {
	length = p.resolveTrailerLength(length)
	start := p.GetPacketLength() - p.trailerIt.Position - length
	return PeekAtAs[T](p, start, length)
}

// PopTrailer peeks length bits at the trailer-pop offset and, on
// success, advances it by the number of bits actually consumed. length
// may be bit.ToEnd.
func (p *Packet) PopTrailer(length bit.Length) chunk.Chunk {
	result, it := chunk.PeekNext(p.contents, p.trailerIt, p.resolveTrailerLength(length))
	p.trailerIt = it
	return result
}

// PopTrailerAs is the typed form of PopTrailer.
func PopTrailerAs[T chunk.FieldsPayload](p *Packet, length bit.Length) (T, bool) {
	length = p.resolveTrailerLength(length)
	v, ok := PeekTrailerAs[T](p, length)
	if ok {
		p.trailerIt = p.trailerIt.Advance(length, -1)
	}
	return v, ok
}

// PeekData peeks length bits starting at the header-pop offset, within
// the [header, length-trailer) data window. length may be bit.ToEnd.
func (p *Packet) PeekData(length bit.Length) chunk.Chunk {
	return p.PeekDataAt(0, length)
}

// PeekDataAt peeks length bits at off within the data window. length may
// be bit.ToEnd, meaning everything from off to the end of the data
// window.
func (p *Packet) PeekDataAt(off, length bit.Length) chunk.Chunk {
	if off < 0 {
		panic(chunkerr.Programming(component, "peekDataAt offset %d is negative", off))
	}
	if length.IsToEnd() {
		length = p.GetDataLength() - off
	}
	if length < 0 || off+length > p.GetDataLength() {
		panic(chunkerr.Programming(component, "peekDataAt [%d,+%d) out of bounds for data length %d", off, length, p.GetDataLength()))
	}
	return p.PeekAt(p.headerIt.Position+off, length)
}

// RemoveFromBeginning physically trims length bits from the front of
// the contents. Only permitted while the header-pop offset is 0.
func (p *Packet) RemoveFromBeginning(length bit.Length) {
	p.assertFrontFree("removeFromBeginning")
	p.contents = chunk.PeekRange(p.contents, length, p.contents.Len()-length)
}

// RemoveFromEnd physically trims length bits from the back of the
// contents. Only permitted while the trailer-pop offset is 0.
func (p *Packet) RemoveFromEnd(length bit.Length) {
	p.assertBackFree("removeFromEnd")
	p.contents = chunk.PeekRange(p.contents, 0, p.contents.Len()-length)
}

// RemovePoppedHeaders trims everything the header-pop iterator has
// already moved past, then resets it to 0.
func (p *Packet) RemovePoppedHeaders() {
	if p.headerIt.Position == 0 {
		return
	}
	p.contents = chunk.PeekRange(p.contents, p.headerIt.Position, p.contents.Len()-p.headerIt.Position)
	p.headerIt = chunk.NewIterator(chunk.Forward, 0)
}

// RemovePoppedTrailers trims everything the trailer-pop iterator has
// already moved past, then resets it to 0.
func (p *Packet) RemovePoppedTrailers() {
	if p.trailerIt.Position == 0 {
		return
	}
	p.contents = chunk.PeekRange(p.contents, 0, p.contents.Len()-p.trailerIt.Position)
	p.trailerIt = chunk.NewIterator(chunk.Backward, 0)
}

// Dup returns a new Packet sharing contents by reference, with its own,
// independently-movable iterators starting at 0. Cheap as long as
// contents is immutable, since no copy is made.
func (p *Packet) Dup() *Packet {
	chunk.MarkShared(p.contents)
	return &Packet{
		id:        uuid.New(),
		contents:  p.contents,
		headerIt:  chunk.NewIterator(chunk.Forward, 0),
		trailerIt: chunk.NewIterator(chunk.Backward, 0),
	}
}
