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

package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunk"
	"github.com/pktchunk/pktchunk/protocol/pdemo"
)

func immutableBytes(b []byte) *chunk.BytesChunk {
	c := chunk.NewBytesChunk(b)
	c.MakeImmutable()
	return c
}

func immutableLength(n bit.Length) *chunk.LengthChunk {
	c := chunk.NewLengthChunk(n)
	c.MakeImmutable()
	return c
}

func TestHeaderPushPopRoundTrip(t *testing.T) {
	hdr := pdemo.NewApplicationHeaderChunk(&pdemo.ApplicationHeader{SomeData: 42})

	p := New()
	p.PushHeader(hdr)

	got, ok := PopHeaderAs[*pdemo.ApplicationHeader](p, hdr.Len())
	require.True(t, ok)
	assert.EqualValues(t, 42, got.SomeData)
	assert.Equal(t, hdr.Len(), p.GetHeaderPopOffset())
}

func TestFragmentReassembly(t *testing.T) {
	p1 := New()
	p1.Append(immutableLength(bit.Bytes(10)))
	p1.Append(immutableBytes([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}))
	p1.MakeImmutable()

	fragment := p1.PeekAt(bit.Bytes(7), bit.Bytes(10))

	p2 := New()
	p2.Append(fragment)
	p2.MakeImmutable()

	head := p2.PeekAt(0, bit.Bytes(3))
	_, ok := head.(*chunk.LengthChunk)
	require.True(t, ok, "expected a LengthChunk, got %T", head)
	assert.Equal(t, bit.Bytes(3), head.Len())

	tail := p2.PeekAt(bit.Bytes(3), bit.Bytes(7))
	bc, ok := tail.(*chunk.BytesChunk)
	require.True(t, ok, "expected a BytesChunk, got %T", tail)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6}, bc.Bytes())
}

func TestBytesChunkMergeThroughPacket(t *testing.T) {
	p := New()
	p.Append(immutableBytes([]byte{0, 1, 2, 3, 4}))
	p.Append(immutableBytes([]byte{0, 1, 2, 3, 4}))
	p.MakeImmutable()

	got := p.PeekAt(0, bit.Bytes(10))
	bc, ok := got.(*chunk.BytesChunk)
	require.True(t, ok, "adjacent BytesChunks pushed via Append must merge, got %T", got)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 0, 1, 2, 3, 4}, bc.Bytes())
}

func TestPolymorphicPopAfterSerialization(t *testing.T) {
	original := New()
	original.PushHeader(pdemo.NewTLVChunk(pdemo.NewInt16TLV(42)))
	original.PushHeader(pdemo.NewTLVChunk(pdemo.NewBoolTLV(true)))
	original.MakeImmutable()

	raw, err := chunk.ToBytes(original.PeekAt(0, original.GetPacketLength()))
	require.NoError(t, err)

	rebuilt := New()
	rebuilt.PushHeader(immutableBytes(raw))
	rebuilt.MakeImmutable()

	first, ok := PopHeaderAs[*pdemo.TLVHeader](rebuilt, bit.Bytes(3))
	require.True(t, ok)
	assert.Equal(t, pdemo.TLVBool, first.Kind)
	assert.True(t, first.BoolValue)

	second, ok := PopHeaderAs[*pdemo.TLVHeader](rebuilt, bit.Bytes(4))
	require.True(t, ok)
	assert.Equal(t, pdemo.TLVInt16, second.Kind)
	assert.EqualValues(t, 42, second.Int16Value)
}

func TestPopHeaderToEndConsumesRemainder(t *testing.T) {
	p := New()
	p.Append(immutableBytes([]byte("HHpayload")))
	p.MakeImmutable()

	p.PopHeader(bit.Bytes(2))
	rest := p.PopHeader(bit.ToEnd)

	bc, ok := rest.(*chunk.BytesChunk)
	require.True(t, ok)
	assert.Equal(t, "payload", string(bc.Bytes()))
	assert.Equal(t, p.GetPacketLength(), p.GetHeaderPopOffset())
}

func TestPeekTrailerToEndCoversFromStart(t *testing.T) {
	p := New()
	p.Append(immutableBytes([]byte("payloadTT")))
	p.MakeImmutable()

	p.PopTrailer(bit.Bytes(2))
	rest := p.PeekTrailer(bit.ToEnd)

	bc, ok := rest.(*chunk.BytesChunk)
	require.True(t, ok)
	assert.Equal(t, "payload", string(bc.Bytes()))
}

func TestPeekDataAtToEndCoversRemainingDataWindow(t *testing.T) {
	p := New()
	p.Append(immutableBytes([]byte("HHpayloadTT")))
	p.MakeImmutable()
	p.PopHeader(bit.Bytes(2))
	p.PopTrailer(bit.Bytes(2))

	rest := p.PeekDataAt(bit.Bytes(3), bit.ToEnd)
	bc, ok := rest.(*chunk.BytesChunk)
	require.True(t, ok)
	assert.Equal(t, "load", string(bc.Bytes()))
}

// TestPeekAtOverreachShortensAndMarksIncomplete exercises the §4.1 soft
// failure path: a peek that runs past the chunk's end is not rejected,
// it's clamped to what's available and flagged Incomplete.
func TestPeekAtOverreachShortensAndMarksIncomplete(t *testing.T) {
	p := New()
	p.Append(immutableBytes([]byte("abc")))
	p.MakeImmutable()

	got := chunk.PeekRange(p.contents, bit.Bytes(1), bit.Bytes(10))
	bc, ok := got.(*chunk.BytesChunk)
	require.True(t, ok)
	assert.Equal(t, "bc", string(bc.Bytes()))
	assert.True(t, bc.Flags().Incomplete)
}

// TestPopHeaderOverreachAdvancesByActualLength exercises the §4.4
// typed-pop contract's untyped sibling: a PopHeader that overreaches the
// packet comes back shortened and Incomplete, and the header-pop offset
// must land on the bits actually consumed, not the bits requested.
func TestPopHeaderOverreachAdvancesByActualLength(t *testing.T) {
	p := New()
	p.Append(immutableBytes([]byte("abc")))
	p.MakeImmutable()

	got := p.PopHeader(bit.Bytes(10))
	bc, ok := got.(*chunk.BytesChunk)
	require.True(t, ok)
	assert.Equal(t, "abc", string(bc.Bytes()))
	assert.True(t, bc.Flags().Incomplete)
	assert.Equal(t, bit.Bytes(3), p.GetHeaderPopOffset())
}

func TestDupSharesContentsIndependentIterators(t *testing.T) {
	p := New()
	p.Append(immutableBytes([]byte("hello")))
	p.MakeImmutable()

	dup := p.Dup()
	dup.PopHeader(bit.Bytes(2))

	assert.Equal(t, bit.Length(0), p.GetHeaderPopOffset())
	assert.Equal(t, bit.Bytes(2), dup.GetHeaderPopOffset())
}

func TestRemovePoppedHeadersTrimsAndResets(t *testing.T) {
	p := New()
	p.Append(immutableBytes([]byte("HHHpayload")))
	p.MakeImmutable()

	p.PopHeader(bit.Bytes(3))
	p.RemovePoppedHeaders()

	assert.Equal(t, bit.Length(0), p.GetHeaderPopOffset())
	assert.Equal(t, bit.Bytes(7), p.GetPacketLength())
}
