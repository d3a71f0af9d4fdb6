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

package pdemo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunk"
)

func TestApplicationHeaderRoundTrip(t *testing.T) {
	fc := NewApplicationHeaderChunk(&ApplicationHeader{SomeData: -7})
	assert.Equal(t, bit.Bytes(4), fc.Len())

	raw, err := chunk.ToBytes(fc)
	require.NoError(t, err)
	assert.Len(t, raw, 4)

	back, err := chunk.DeserializeFields(TypeApplicationHeader, raw)
	require.NoError(t, err)
	hdr, ok := back.Payload().(*ApplicationHeader)
	require.True(t, ok)
	assert.Equal(t, int32(-7), hdr.SomeData)
}

func TestBoolTLVRoundTrip(t *testing.T) {
	fc := NewTLVChunk(NewBoolTLV(true))
	assert.Equal(t, bit.Bytes(3), fc.Len())

	raw, err := chunk.ToBytes(fc)
	require.NoError(t, err)
	assert.Equal(t, []byte{byte(TLVBool), 1, 1}, raw)

	back, err := chunk.DeserializeFields(TypeTLVHeader, raw)
	require.NoError(t, err)
	tlv, ok := back.Payload().(*TLVHeader)
	require.True(t, ok)
	assert.Equal(t, TLVBool, tlv.Kind)
	assert.True(t, tlv.BoolValue)
}

func TestInt16TLVRoundTrip(t *testing.T) {
	fc := NewTLVChunk(NewInt16TLV(-300))
	assert.Equal(t, bit.Bytes(4), fc.Len())

	raw, err := chunk.ToBytes(fc)
	require.NoError(t, err)

	back, err := chunk.DeserializeFields(TypeTLVHeader, raw)
	require.NoError(t, err)
	tlv, ok := back.Payload().(*TLVHeader)
	require.True(t, ok)
	assert.Equal(t, TLVInt16, tlv.Kind)
	assert.Equal(t, int16(-300), tlv.Int16Value)
}

func TestTLVDeserializeRejectsBadDeclaredLength(t *testing.T) {
	_, err := chunk.DeserializeFields(TypeTLVHeader, []byte{byte(TLVBool), 2, 1, 0})
	assert.Error(t, err)
}
