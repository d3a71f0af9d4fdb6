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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pktchunk/pktchunk/bit"
)

func TestEmptyChunkIsNeutral(t *testing.T) {
	e := NewEmptyChunk()
	assert.Equal(t, KindEmpty, e.Kind())
	assert.Equal(t, bit.Length(0), e.Len())
	assert.True(t, e.Flags().Immutable)
}

func TestLengthChunkMerge(t *testing.T) {
	a := NewLengthChunk(bit.Bytes(4))
	b := NewLengthChunk(bit.Bytes(6))
	merged, ok := TryMerge(a, b)
	require.True(t, ok)
	lc, ok := merged.(*LengthChunk)
	require.True(t, ok)
	assert.Equal(t, bit.Bytes(10), lc.Len())
}

func TestLengthChunkDifferentFillDoesNotMerge(t *testing.T) {
	a := NewLengthChunkFill(bit.Bytes(4), 0x00)
	b := NewLengthChunkFill(bit.Bytes(4), 0xFF)
	_, ok := TryMerge(a, b)
	assert.False(t, ok)
}

func TestBytesChunkWindowWholeReturnsSelf(t *testing.T) {
	b := NewBytesChunk([]byte("hello"))
	got := PeekRange(b, 0, b.Len())
	assert.Same(t, b, got)
}

func TestBytesChunkWindowPartial(t *testing.T) {
	b := NewBytesChunk([]byte("hello world"))
	got := PeekRange(b, bit.Bytes(6), bit.Bytes(5))
	bc, ok := got.(*BytesChunk)
	require.True(t, ok)
	assert.Equal(t, "world", string(bc.Bytes()))
}

func TestBytesChunkMerge(t *testing.T) {
	a := NewBytesChunk([]byte("foo"))
	b := NewBytesChunk([]byte("bar"))
	merged, ok := TryMerge(a, b)
	require.True(t, ok)
	bc := merged.(*BytesChunk)
	assert.Equal(t, "foobar", string(bc.Bytes()))
}

func TestImmutableChunkRejectsMutation(t *testing.T) {
	b := NewBytesChunk([]byte("abc"))
	b.MakeImmutable()
	assert.Panics(t, func() {
		b.SetBytes([]byte("xyz"))
	})
}

func TestCopyOnWriteDoesNotCorruptSharedChunk(t *testing.T) {
	b := NewBytesChunk([]byte("abc"))
	other := NewLengthChunk(bit.Bytes(2)) // different kind: stays a real two-child sequence
	seqChunk := NewSequenceChunk(b, other)
	seq, ok := seqChunk.(*SequenceChunk)
	require.True(t, ok)
	mutated := b.SetBytes([]byte("xyz"))

	assert.NotSame(t, b, mutated, "mutation of a shared chunk must clone")
	original := seq.Children()[0].(*BytesChunk)
	assert.Equal(t, "abc", string(original.Bytes()), "the sequence's reference must be unaffected")
	assert.Equal(t, "xyz", string(mutated.Bytes()))
}

// TestSequenceChunkMergesAdjacentBytesChunksOnConstruction is the direct
// regression test for the merge pass: two same-kind adjacent children
// must fold into one chunk at construction, not survive as a two-child
// sequence waiting to be merged later.
func TestSequenceChunkMergesAdjacentBytesChunksOnConstruction(t *testing.T) {
	got := NewSequenceChunk(NewBytesChunk([]byte("foo")), NewBytesChunk([]byte("bar")))
	bc, ok := got.(*BytesChunk)
	require.True(t, ok, "two mergeable children must collapse to a single chunk, got %T", got)
	assert.Equal(t, "foobar", string(bc.Bytes()))
}

// TestSequenceChunkFlattensNesting uses a LengthChunk in the middle so
// flattening is exercised without the merge pass also collapsing
// same-kind neighbors out from under the assertion.
func TestSequenceChunkFlattensNesting(t *testing.T) {
	inner := NewSequenceChunk(NewBytesChunk([]byte("a")), NewLengthChunk(bit.Bytes(1)))
	outer := NewSequenceChunk(inner, NewBytesChunk([]byte("c")))
	seq, ok := outer.(*SequenceChunk)
	require.True(t, ok)
	assert.Len(t, seq.Children(), 3)
	assert.Equal(t, bit.Bytes(3), outer.Len())
}

func TestSequenceChunkChildAtResumeHint(t *testing.T) {
	built := NewSequenceChunk(
		NewBytesChunk([]byte("aaaa")),
		NewLengthChunk(bit.Bytes(4)),
		NewBytesChunk([]byte("cccc")),
	)
	seq, ok := built.(*SequenceChunk)
	require.True(t, ok)

	child, start, idx := seq.ChildAt(bit.Bytes(5), -1)
	require.Equal(t, 1, idx)
	assert.Equal(t, bit.Bytes(4), start)
	lc, ok := child.(*LengthChunk)
	require.True(t, ok)
	assert.Equal(t, bit.Bytes(4), lc.Len())

	// a hint that still covers the position resolves without search.
	child2, start2, idx2 := seq.ChildAt(bit.Bytes(6), idx)
	assert.Equal(t, idx, idx2)
	assert.Same(t, child, child2)
	assert.Equal(t, start, start2)
}

// TestPeekRangeAcrossSequenceBoundary uses heterogeneous children — a
// LengthChunk followed by a BytesChunk — so the sequence survives
// construction intact and the peek genuinely has to reassemble a result
// spanning both children, rather than the merge pass having already
// collapsed everything before PeekRange ever runs.
func TestPeekRangeAcrossSequenceBoundary(t *testing.T) {
	seq := NewSequenceChunk(
		NewLengthChunkFill(bit.Bytes(4), 0xAA),
		NewBytesChunk([]byte("bbbb")),
	)
	got := PeekRange(seq, bit.Bytes(2), bit.Bytes(4))
	b, err := ToBytes(got)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xAA, 'b', 'b'}, b)
}

// TestSequenceChunkMergeIsIdempotent checks Property 6: re-running
// NewSequenceChunk over an already-merged sequence's children leaves the
// structure unchanged, since mergeChildren has nothing left to fold.
func TestSequenceChunkMergeIsIdempotent(t *testing.T) {
	built := NewSequenceChunk(
		NewBytesChunk([]byte("aaaa")),
		NewLengthChunk(bit.Bytes(4)),
		NewBytesChunk([]byte("cccc")),
	)
	seq, ok := built.(*SequenceChunk)
	require.True(t, ok)
	require.Len(t, seq.Children(), 3)

	again := NewSequenceChunk(seq)
	reseq, ok := again.(*SequenceChunk)
	require.True(t, ok)
	assert.Len(t, reseq.Children(), 3)
	assert.Equal(t, seq.Len(), reseq.Len())
}

// TestPeekNextForwardAdvancesByActualLength exercises Packet/ChunkQueue's
// traversal vocabulary directly: a Forward iterator's Position is used
// as-is for the peek offset, and an overreaching request comes back
// shortened with the iterator advanced only by what was actually
// consumed.
func TestPeekNextForwardAdvancesByActualLength(t *testing.T) {
	b := NewBytesChunk([]byte("hello"))
	it := NewIterator(Forward, bit.Bytes(3))

	got, next := PeekNext(b, it, bit.Bytes(10))
	bc, ok := got.(*BytesChunk)
	require.True(t, ok)
	assert.Equal(t, "lo", string(bc.Bytes()))
	assert.True(t, bc.Flags().Incomplete)
	assert.Equal(t, bit.Bytes(5), next.Position)
}

// TestPeekNextBackwardConvertsDistanceFromEnd exercises the Backward
// half of the direction conversion §3.3 assigns PeekNext: Position is a
// distance from the chunk's end, mirroring Packet's trailer-pop offset.
func TestPeekNextBackwardConvertsDistanceFromEnd(t *testing.T) {
	b := NewBytesChunk([]byte("HHpayloadTT"))
	it := NewIterator(Backward, bit.Bytes(2))

	got, next := PeekNext(b, it, bit.Bytes(4))
	bc, ok := got.(*BytesChunk)
	require.True(t, ok)
	assert.Equal(t, "load", string(bc.Bytes()))
	assert.Equal(t, bit.Bytes(6), next.Position)
}

// TestPeekNextResumeHintAvoidsChildSearch walks two sequential PeekNext
// calls across a SequenceChunk and confirms the second call's resume
// hint (threaded through Iterator.Index) lands on the same child index
// ChildAt would resolve by search, so a forward walk over many children
// never regresses to re-scanning from the start.
func TestPeekNextResumeHintAvoidsChildSearch(t *testing.T) {
	seq := NewSequenceChunk(
		NewLengthChunkFill(bit.Bytes(4), 0xAA),
		NewBytesChunk([]byte("bbbb")),
	)

	it := NewIterator(Forward, 0)
	first, it := PeekNext(seq, it, bit.Bytes(4))
	_, ok := first.(*LengthChunk)
	require.True(t, ok)
	assert.Equal(t, 0, it.Index)

	second, it := PeekNext(seq, it, bit.Bytes(4))
	bc, ok := second.(*BytesChunk)
	require.True(t, ok)
	assert.Equal(t, "bbbb", string(bc.Bytes()))
	assert.Equal(t, 1, it.Index)
	assert.Equal(t, bit.Bytes(8), it.Position)
}

func TestPeekRangeToEndResolvesRemainingLength(t *testing.T) {
	b := NewBytesChunk([]byte("hello world"))
	got := PeekRange(b, bit.Bytes(6), bit.ToEnd)
	bc, ok := got.(*BytesChunk)
	require.True(t, ok)
	assert.Equal(t, "world", string(bc.Bytes()))
}

func TestSliceChunkComposesOffsetsWithoutNesting(t *testing.T) {
	b := NewBytesChunk([]byte("0123456789"))
	s1 := NewSliceChunk(b, bit.Bytes(2), bit.Bytes(6)) // "234567"
	s2 := NewSliceChunk(s1, bit.Bytes(1), bit.Bytes(3)) // "345"

	sc, ok := s2.(*SliceChunk)
	require.True(t, ok)
	base, off, ln := sc.Base()
	assert.Same(t, b, base, "slice of a slice must reference the innermost base")
	assert.Equal(t, bit.Bytes(3), off)
	assert.Equal(t, bit.Bytes(3), ln)
}

func TestDigestStableForEqualContent(t *testing.T) {
	a := NewBytesChunk([]byte("same"))
	b := NewBytesChunk([]byte("same"))
	da, err := Digest(a)
	require.NoError(t, err)
	db, err := Digest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestToBytesSerializesSequenceInOrder(t *testing.T) {
	seq := NewSequenceChunk(
		NewLengthChunkFill(bit.Bytes(2), 0xAB),
		NewBytesChunk([]byte("X")),
	)
	b, err := ToBytes(seq)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAB, 0xAB, 'X'}, b)
}
