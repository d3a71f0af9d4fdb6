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

package chunkqueue

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

func TestPushPopBytesAcrossFragments(t *testing.T) {
	q := New()
	q.Push(immutableBytes([]byte{0, 1, 2}))
	q.Push(immutableBytes([]byte{3, 4, 5}))

	b, err := q.PopBytes(bit.Bytes(4))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 3}, b)
	assert.Equal(t, bit.Bytes(2), q.Len())
}

func TestHasAndPopTypedPayload(t *testing.T) {
	q := New()
	hdr := pdemo.NewApplicationHeaderChunk(&pdemo.ApplicationHeader{SomeData: 7})
	q.Push(hdr)

	assert.True(t, Has[*pdemo.ApplicationHeader](q, hdr.Len()))
	v, ok := Pop[*pdemo.ApplicationHeader](q, hdr.Len())
	require.True(t, ok)
	assert.EqualValues(t, 7, v.SomeData)
	assert.Equal(t, bit.Length(0), q.Len())
}

func TestPopBytesToEndConsumesRemainder(t *testing.T) {
	q := New()
	q.Push(immutableBytes([]byte{0, 1, 2}))
	q.Push(immutableBytes([]byte{3, 4, 5}))

	_, err := q.PopBytes(bit.Bytes(2))
	require.NoError(t, err)

	b, err := q.PopBytes(bit.ToEnd)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 3, 4, 5}, b)
	assert.Equal(t, bit.Length(0), q.Len())
}

func TestHasAndPopToEnd(t *testing.T) {
	q := New()
	hdr := pdemo.NewApplicationHeaderChunk(&pdemo.ApplicationHeader{SomeData: 9})
	q.Push(hdr)

	assert.True(t, Has[*pdemo.ApplicationHeader](q, bit.ToEnd))
	v, ok := Pop[*pdemo.ApplicationHeader](q, bit.ToEnd)
	require.True(t, ok)
	assert.EqualValues(t, 9, v.SomeData)
	assert.Equal(t, bit.Length(0), q.Len())
}

func TestCompactResetsFront(t *testing.T) {
	q := New()
	q.Push(immutableBytes([]byte("abcdef")))
	_, err := q.PopBytes(bit.Bytes(3))
	require.NoError(t, err)

	q.Compact()
	b, err := q.PopBytes(bit.Bytes(3))
	require.NoError(t, err)
	assert.Equal(t, []byte("def"), b)
}
