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

// Package pdemo is a minimal protocol package demonstrating the
// three-step FieldsChunk contract: a payload struct, a ChunkSerializer,
// and an init-time Register call. It is not a real wire protocol; it
// exists so the chunk package's registry and peek engine have something
// concrete to exercise.
package pdemo

import (
	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunk"
	"github.com/pktchunk/pktchunk/serializer"
)

// TypeApplicationHeader is the TypeID ApplicationHeader registers under.
const TypeApplicationHeader chunk.TypeID = "pdemo.applicationheader"

// ApplicationHeader is a fixed 4-byte header carrying a single int32
// payload field.
type ApplicationHeader struct {
	SomeData int32
}

func (h *ApplicationHeader) TypeID() chunk.TypeID { return TypeApplicationHeader }

// NewApplicationHeaderChunk wraps h in an immutable FieldsChunk, the
// shape most callers want: built once, pushed as a header, never
// mutated again.
func NewApplicationHeaderChunk(h *ApplicationHeader) *chunk.FieldsChunk {
	fc := chunk.NewFieldsChunk(h)
	fc.MakeImmutable()
	return fc
}

type applicationHeaderSerializer struct{}

func (applicationHeaderSerializer) Length(chunk.FieldsPayload) bit.Length {
	return bit.Bytes(4)
}

func (applicationHeaderSerializer) Serialize(out *serializer.ByteOutputStream, payload chunk.FieldsPayload) error {
	h := payload.(*ApplicationHeader)
	out.WriteUint32(uint32(h.SomeData))
	return nil
}

func (applicationHeaderSerializer) Deserialize(in *serializer.ByteInputStream) (chunk.FieldsPayload, error) {
	v, err := in.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &ApplicationHeader{SomeData: int32(v)}, nil
}

func init() {
	chunk.Register(TypeApplicationHeader, applicationHeaderSerializer{})
}
