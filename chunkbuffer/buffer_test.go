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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunk"
)

func TestChunkBufferOverwriteProducesSingleMergedRegion(t *testing.T) {
	b := New()
	b.Replace(0, chunk.NewLengthChunk(bit.Bytes(10)))
	b.Replace(bit.Bytes(10), chunk.NewLengthChunk(bit.Bytes(10)))
	b.Replace(bit.Bytes(3), chunk.NewBytesChunk([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}))

	require.Equal(t, 1, b.GetNumRegions())
	assert.Equal(t, bit.Length(0), b.GetRegionStartOffset(0))
	assert.Equal(t, bit.Bytes(20), b.GetRegionData(0).Len())

	mid := chunk.PeekRange(b.GetRegionData(0), bit.Bytes(3), bit.Bytes(10))
	bc, ok := mid.(*chunk.BytesChunk)
	require.True(t, ok)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, bc.Bytes())
}

func TestChunkBufferRegionsNeverOverlap(t *testing.T) {
	b := New()
	b.Replace(bit.Bytes(0), chunk.NewBytesChunk([]byte{1, 2, 3, 4, 5}))
	b.Replace(bit.Bytes(2), chunk.NewBytesChunk([]byte{9, 9}))

	for i := 0; i < b.GetNumRegions()-1; i++ {
		thisEnd := b.GetRegionStartOffset(i) + b.GetRegionData(i).Len()
		nextStart := b.GetRegionStartOffset(i + 1)
		assert.LessOrEqual(t, thisEnd, nextStart)
	}
}

func TestChunkBufferClearSplitsStraddlingRegion(t *testing.T) {
	b := New()
	b.Replace(0, chunk.NewBytesChunk([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}))
	b.Clear(bit.Bytes(3), bit.Bytes(4))

	require.Equal(t, 2, b.GetNumRegions())
	assert.Equal(t, bit.Length(0), b.GetRegionStartOffset(0))
	assert.Equal(t, []byte{0, 1, 2}, b.GetRegionData(0).(*chunk.BytesChunk).Bytes())
	assert.Equal(t, bit.Bytes(7), b.GetRegionStartOffset(1))
	assert.Equal(t, []byte{7, 8, 9}, b.GetRegionData(1).(*chunk.BytesChunk).Bytes())
}

func TestReassemblyBufferCompletion(t *testing.T) {
	r := NewReassemblyBuffer(bit.Bytes(10))
	assert.False(t, r.IsComplete())

	r.Replace(bit.Bytes(5), chunk.NewBytesChunk([]byte{5, 6, 7, 8, 9}))
	assert.False(t, r.IsComplete())

	r.Replace(0, chunk.NewBytesChunk([]byte{0, 1, 2, 3, 4}))
	require.True(t, r.IsComplete())
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, r.GetData().(*chunk.BytesChunk).Bytes())
}

func TestReorderBufferOutOfOrderThenFill(t *testing.T) {
	r := NewReorderBuffer(bit.Bytes(1000))

	r.Replace(bit.Bytes(1020), chunk.NewLengthChunk(bit.Bytes(10)))
	_, ok := r.PopData()
	assert.False(t, ok)

	r.Replace(bit.Bytes(1000), chunk.NewLengthChunk(bit.Bytes(10)))
	r.Replace(bit.Bytes(1010), chunk.NewLengthChunk(bit.Bytes(10)))

	data, ok := r.PopData()
	require.True(t, ok)
	assert.Equal(t, bit.Bytes(30), data.Len())
	assert.Equal(t, bit.Bytes(1030), r.ExpectedOffset())
}

func TestReorderBufferExpectedOffsetMonotonic(t *testing.T) {
	r := NewReorderBuffer(0)
	r.Replace(0, chunk.NewBytesChunk([]byte{0, 1}))
	prev := r.ExpectedOffset()
	data, ok := r.PopData()
	require.True(t, ok)
	assert.Equal(t, []byte{0, 1}, data.(*chunk.BytesChunk).Bytes())
	assert.GreaterOrEqual(t, r.ExpectedOffset(), prev)

	r.Replace(bit.Bytes(2), chunk.NewBytesChunk([]byte{2, 3}))
	prev = r.ExpectedOffset()
	_, ok = r.PopData()
	require.True(t, ok)
	assert.GreaterOrEqual(t, r.ExpectedOffset(), prev)
}
