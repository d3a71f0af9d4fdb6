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
	"github.com/pkg/errors"

	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunk"
	"github.com/pktchunk/pktchunk/serializer"
)

// TypeTLVHeader is the TypeID both TLVHeader variants register under: a
// single polymorphic type that the peek engine can resolve from either
// live chunk structure or raw serialized bytes, picking the variant
// by its tag byte.
const TypeTLVHeader chunk.TypeID = "pdemo.tlv"

// TLVKind distinguishes the two TLVHeader variants this demo protocol
// supports.
type TLVKind uint8

const (
	TLVBool  TLVKind = 1
	TLVInt16 TLVKind = 2
)

// TLVHeader is a tagged-length-value record. Exactly one of BoolValue /
// Int16Value is meaningful, selected by Kind.
type TLVHeader struct {
	Kind       TLVKind
	BoolValue  bool
	Int16Value int16
}

func (*TLVHeader) TypeID() chunk.TypeID { return TypeTLVHeader }

// NewBoolTLV returns a 3-byte TLVHeader: 1 tag byte, 1 length byte, 1
// value byte.
func NewBoolTLV(v bool) *TLVHeader {
	return &TLVHeader{Kind: TLVBool, BoolValue: v}
}

// NewInt16TLV returns a 4-byte TLVHeader: 1 tag byte, 1 length byte, 2
// value bytes.
func NewInt16TLV(v int16) *TLVHeader {
	return &TLVHeader{Kind: TLVInt16, Int16Value: v}
}

// NewTLVChunk wraps h in an immutable FieldsChunk.
func NewTLVChunk(h *TLVHeader) *chunk.FieldsChunk {
	fc := chunk.NewFieldsChunk(h)
	fc.MakeImmutable()
	return fc
}

type tlvSerializer struct{}

func (tlvSerializer) Length(payload chunk.FieldsPayload) bit.Length {
	h := payload.(*TLVHeader)
	switch h.Kind {
	case TLVBool:
		return bit.Bytes(3)
	case TLVInt16:
		return bit.Bytes(4)
	default:
		panic(errors.Errorf("pdemo: unknown TLVKind %d", h.Kind))
	}
}

func (tlvSerializer) Serialize(out *serializer.ByteOutputStream, payload chunk.FieldsPayload) error {
	h := payload.(*TLVHeader)
	switch h.Kind {
	case TLVBool:
		out.WriteByte(byte(TLVBool))
		out.WriteByte(1)
		if h.BoolValue {
			out.WriteByte(1)
		} else {
			out.WriteByte(0)
		}
	case TLVInt16:
		out.WriteByte(byte(TLVInt16))
		out.WriteByte(2)
		out.WriteUint16(uint16(h.Int16Value))
	default:
		return errors.Errorf("pdemo: unknown TLVKind %d", h.Kind)
	}
	return nil
}

func (tlvSerializer) Deserialize(in *serializer.ByteInputStream) (chunk.FieldsPayload, error) {
	tag, err := in.ReadByte()
	if err != nil {
		return nil, errors.Wrap(err, "pdemo: reading TLV tag")
	}
	vlen, err := in.ReadByte()
	if err != nil {
		return nil, errors.Wrap(err, "pdemo: reading TLV length")
	}
	switch TLVKind(tag) {
	case TLVBool:
		if vlen != 1 {
			return nil, errors.Errorf("pdemo: bool TLV declared length %d, want 1", vlen)
		}
		v, err := in.ReadByte()
		if err != nil {
			return nil, err
		}
		return &TLVHeader{Kind: TLVBool, BoolValue: v != 0}, nil
	case TLVInt16:
		if vlen != 2 {
			return nil, errors.Errorf("pdemo: int16 TLV declared length %d, want 2", vlen)
		}
		v, err := in.ReadUint16()
		if err != nil {
			return nil, err
		}
		return &TLVHeader{Kind: TLVInt16, Int16Value: int16(v)}, nil
	default:
		return nil, errors.Errorf("pdemo: unknown TLV tag %d", tag)
	}
}

func init() {
	chunk.Register(TypeTLVHeader, tlvSerializer{})
}
