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

// Kind identifies which of the six closed variants a Chunk implements.
// The peek and merge dispatch tables switch on Kind rather than relying
// on a deep virtual hierarchy.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindLength
	KindBytes
	KindFields
	KindSlice
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindLength:
		return "Length"
	case KindBytes:
		return "Bytes"
	case KindFields:
		return "Fields"
	case KindSlice:
		return "Slice"
	case KindSequence:
		return "Sequence"
	default:
		return "Unknown"
	}
}

// TypeID names a chunk type for the purposes of peek's "requested_type"
// and the serializer registry. The five built-in kinds each have a fixed
// TypeID; FieldsChunk implementers register their own.
type TypeID string

const (
	TypeEmpty    TypeID = "chunk.empty"
	TypeLength   TypeID = "chunk.length"
	TypeBytes    TypeID = "chunk.bytes"
	TypeSlice    TypeID = "chunk.slice"
	TypeSequence TypeID = "chunk.sequence"

	// typeNative is never registered; it is the internal sentinel
	// TypeIDOf returns for a Chunk that is none of the six built-in
	// kinds.
	typeNative TypeID = ""
)

// TypeIDOf returns the TypeID identifying c's concrete type: one of the
// five built-in constants, or a FieldsChunk's own registered TypeID.
func TypeIDOf(c Chunk) TypeID {
	switch v := c.(type) {
	case *EmptyChunk:
		return TypeEmpty
	case *LengthChunk:
		return TypeLength
	case *BytesChunk:
		return TypeBytes
	case *SliceChunk:
		return TypeSlice
	case *SequenceChunk:
		return TypeSequence
	case *FieldsChunk:
		return v.TypeID()
	default:
		return typeNative
	}
}
