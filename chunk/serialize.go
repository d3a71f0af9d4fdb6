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
	"github.com/pktchunk/pktchunk/chunkerr"
	"github.com/pktchunk/pktchunk/serializer"
)

// Serialize writes c's wire representation to out. It recurses through
// SliceChunk and SequenceChunk structure and defers to the registered
// ChunkSerializer for FieldsChunk payloads; LengthChunk writes its fill
// byte repeated across its byte length, and BytesChunk writes its
// octets verbatim.
func Serialize(out *serializer.ByteOutputStream, c Chunk) error {
	switch v := c.(type) {
	case *EmptyChunk:
		return nil
	case *LengthChunk:
		out.WriteByteRepeatedly(v.fill, int(v.length.Bytes()))
		return nil
	case *BytesChunk:
		return out.WriteBytes(v.data, 0, int64(len(v.data)))
	case *FieldsChunk:
		b, err := v.cachedBytes()
		if err != nil {
			return err
		}
		return out.WriteBytes(b, 0, int64(len(b)))
	case *SliceChunk:
		sub := PeekRange(v.base, v.offset, v.length)
		return Serialize(out, sub)
	case *SequenceChunk:
		for _, child := range v.children {
			if err := Serialize(out, child); err != nil {
				return err
			}
		}
		return nil
	default:
		return chunkerr.Unsupported(component, "Serialize: unhandled chunk kind %T", c)
	}
}

// ToBytes serializes c into a freshly allocated byte slice.
func ToBytes(c Chunk) ([]byte, error) {
	out := serializer.NewByteOutputStream()
	if err := Serialize(out, c); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DeserializeBytes reads n bytes from b (an uninterpreted byte stream)
// into a BytesChunk. It is the generic fallback used when the caller
// has no more specific structure to parse into — most protocol decoders
// will call DeserializeFields with a registered TypeID instead.
func DeserializeBytes(in *serializer.ByteInputStream, n int) (*BytesChunk, error) {
	b, err := in.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return NewBytesChunk(b), nil
}
