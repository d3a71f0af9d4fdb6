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

// PeekRange returns the sub-chunk covering [offset, offset+length) of c,
// without mutating c. Each variant picks the cheapest representation it
// can per §4.1: a request spanning the whole chunk returns c itself; a
// zero-length request always returns a new EmptyChunk; otherwise
// each kind either slices natively (BytesChunk, LengthChunk) or falls
// back to wrapping a copy (FieldsChunk, via its serialized byte cache).
//
// length may be bit.ToEnd, meaning "everything from offset to the end of
// c" — resolved here before any bounds checking.
//
// If [offset, offset+length) runs past c's end, the request is not
// rejected: it is silently shortened to what's actually available and
// the result comes back flagged Incomplete, per §4.1's "never truncated
// silently with complete status." Only a negative or past-the-end
// offset is a ProgrammingError, since that's not a shortenable request
// at all.
func PeekRange(c Chunk, offset, length bit.Length) Chunk {
	result, _, _ := peekRangeHinted(c, offset, length, -1)
	return result
}

// peekRangeHinted is PeekRange's implementation, plus a SequenceChunk
// resume hint threaded in and the index actually resolved, and the
// length actually used (which may be shorter than requested, after
// shortening), threaded back out. PeekNext uses both of the latter to
// keep an Iterator's Index and Position accurate across a traversal;
// PeekRange itself discards them, since a one-off peek has no iterator
// to update.
func peekRangeHinted(c Chunk, offset, length bit.Length, hint int) (Chunk, int, bit.Length) {
	if offset < 0 {
		panic(chunkerr.Programming(component, "peek offset %d is negative", offset))
	}
	if offset > c.Len() {
		panic(chunkerr.Programming(component, "peek offset %d beyond chunk length %d", offset, c.Len()))
	}
	if length.IsToEnd() {
		length = c.Len() - offset
	}
	if length < 0 {
		panic(chunkerr.Programming(component, "peek length %d is invalid", length))
	}

	shortened := false
	if offset+length > c.Len() {
		length = c.Len() - offset
		shortened = true
	}

	var result Chunk
	idx := -1
	switch {
	case length == 0:
		result = NewEmptyChunk()
	case offset == 0 && length == c.Len():
		result = c
	default:
		result, idx = peekDispatchHinted(c, offset, length, hint)
	}

	if shortened {
		result = markIncomplete(result)
	}
	return result, idx, length
}

func peekDispatchHinted(c Chunk, offset, length bit.Length, hint int) (Chunk, int) {
	switch v := c.(type) {
	case *EmptyChunk:
		panic(chunkerr.Programming(component, "non-empty peek range requested from EmptyChunk"))
	case *BytesChunk:
		return v.window(offset, length), -1
	case *LengthChunk:
		// Content is a uniform fill byte, so any sub-window of a given
		// length is indistinguishable from any other at the same length.
		return v.WithLength(length), -1
	case *SliceChunk:
		base, boff, _ := v.Base()
		result, idx, _ := peekRangeHinted(base, boff+offset, length, hint)
		return result, idx
	case *FieldsChunk:
		return peekFieldsRange(v, offset, length), -1
	case *SequenceChunk:
		return peekSequenceRange(v, offset, length, hint)
	default:
		panic(chunkerr.Unsupported(component, "PeekRange: unhandled chunk kind %T", c))
	}
}

// markIncomplete returns a copy of c with its Incomplete flag set, used
// when PeekRange shortens a request that ran past the chunk's end. c is
// marked shared first, via the same MarkShared every other constructor
// in this package calls before taking a second reference to a mutable
// chunk, so the original and the returned copy agree about
// copy-on-write status afterward.
func markIncomplete(c Chunk) Chunk {
	MarkShared(c)
	switch v := c.(type) {
	case *EmptyChunk:
		cp := *v
		cp.flags = cp.flags.MarkIncomplete()
		return &cp
	case *BytesChunk:
		cp := *v
		cp.flags = cp.flags.MarkIncomplete()
		return &cp
	case *LengthChunk:
		cp := *v
		cp.flags = cp.flags.MarkIncomplete()
		return &cp
	case *FieldsChunk:
		cp := *v
		cp.flags = cp.flags.MarkIncomplete()
		return &cp
	case *SliceChunk:
		cp := *v
		cp.flags = cp.flags.MarkIncomplete()
		return &cp
	case *SequenceChunk:
		cp := *v
		cp.flags = cp.flags.MarkIncomplete()
		return &cp
	default:
		panic(chunkerr.Unsupported(component, "markIncomplete: unhandled chunk kind %T", c))
	}
}

func peekFieldsRange(c *FieldsChunk, offset, length bit.Length) Chunk {
	b, err := c.cachedBytes()
	if err != nil {
		panic(chunkerr.Unsupported(component, "peeking a sub-range of FieldsChunk %q requires serialization: %v", c.TypeID(), err))
	}
	off, ln := offset.Bytes(), length.Bytes()
	sub := make([]byte, ln)
	copy(sub, b[off:off+ln])
	return NewBytesChunk(sub)
}

// peekSequenceRange resolves a range against a SequenceChunk's
// children, using hint as the starting index for ChildAt's O(1) resume
// path. A range confined to a single child recurses into it directly; a
// range spanning several children is rebuilt as a fresh SequenceChunk of
// the covered parts.
func peekSequenceRange(seq *SequenceChunk, offset, length bit.Length, hint int) (Chunk, int) {
	child, childStart, idx := seq.ChildAt(offset, hint)
	localOffset := offset - childStart
	available := child.Len() - localOffset
	if length <= available {
		result, _, _ := peekRangeHinted(child, localOffset, length, -1)
		return result, idx
	}

	parts := []Chunk{PeekRange(child, localOffset, available)}
	remaining := length - available
	pos := offset + available
	for remaining > 0 {
		child, childStart, idx = seq.ChildAt(pos, idx+1)
		localOffset = pos - childStart
		available = child.Len() - localOffset
		take := remaining
		if take > available {
			take = available
		}
		parts = append(parts, PeekRange(child, localOffset, take))
		remaining -= take
		pos += take
	}
	return NewSequenceChunk(parts...), idx
}

// PeekNext advances it by length along its own direction and returns
// the chunk covering the range crossed. It is the Iterator-carrying
// form of PeekRange that Packet and ChunkQueue use to walk their
// header/trailer/front offsets per §3.3: a Forward iterator's Position
// is used directly as the peek offset; a Backward one is converted from
// "distance from the end" first. it.Index threads through as a
// SequenceChunk resume hint, so a forward walk across many small pops
// stays close to O(1) per pop instead of binary-searching ChildAt's
// cumulative-offset table every time.
//
// If the crossed range runs past c's end, the peek is shortened exactly
// as PeekRange shortens one — the result comes back Incomplete-flagged
// — and it advances by the amount actually available rather than the
// amount requested, so a shortened pop never leaves the iterator
// pointing past what it actually consumed.
func PeekNext(c Chunk, it Iterator, length bit.Length) (Chunk, Iterator) {
	if length.IsToEnd() {
		length = c.Len() - it.Position
	}
	offset := it.Position
	if it.Dir == Backward {
		offset = c.Len() - it.Position - length
	}
	result, idx, actual := peekRangeHinted(c, offset, length, it.Index)
	return result, it.Advance(actual, idx)
}

// PeekAs type-asserts the payload of the FieldsChunk covering
// [offset, offset+length) of c against T, the concrete payload type a
// protocol package registered. It reports false, rather than panicking,
// when the range does not resolve to a FieldsChunk of that exact Go
// type — a mismatch is a normal "wrong protocol" outcome, not a bug.
//
// When the range resolves to raw bytes instead — a BytesChunk produced
// by serializing a packet and rebuilding it from the wire, as after a
// peer boundary — PeekAs deserializes on demand using T's own TypeID,
// so popping a fragment of a byte stream behaves the same as popping
// live chunk structure. T's TypeID method must not depend on instance
// state: it is invoked on a nil *T here to discover which
// ChunkSerializer to use before any payload value exists.
func PeekAs[T FieldsPayload](c Chunk, offset, length bit.Length) (T, bool) {
	var zero T
	sub := PeekRange(c, offset, length)
	if fc, ok := sub.(*FieldsChunk); ok {
		v, ok := fc.Payload().(T)
		return v, ok
	}
	b, err := ToBytes(sub)
	if err != nil {
		return zero, false
	}
	fc, err := DeserializeFields(zero.TypeID(), b)
	if err != nil {
		return zero, false
	}
	v, ok := fc.Payload().(T)
	return v, ok
}

// MustPeekAs is PeekAs, panicking with a ProgrammingError instead of
// returning false. Use it where the caller's own protocol logic
// guarantees the range holds that payload type.
func MustPeekAs[T FieldsPayload](c Chunk, offset, length bit.Length) T {
	v, ok := PeekAs[T](c, offset, length)
	if !ok {
		panic(chunkerr.Programming(component, "MustPeekAs: range [%d,+%d) is not the expected payload type", offset, length))
	}
	return v
}
