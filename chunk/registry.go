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
	"sync"

	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunkerr"
	"github.com/pktchunk/pktchunk/internal/telemetry"
	"github.com/pktchunk/pktchunk/serializer"
)

// ChunkSerializer converts between a protocol's FieldsPayload and wire
// bytes. Implementations are registered once, at package init time, by
// the protocol package that defines the payload — see protocol/pdemo
// for the canonical three-step contract (struct, ChunkSerializer,
// Register call).
type ChunkSerializer interface {
	// Length reports the serialized length of payload without writing
	// it out. Called whenever a FieldsChunk is constructed or its
	// payload replaced.
	Length(payload FieldsPayload) bit.Length

	// Serialize writes payload's wire representation to out.
	Serialize(out *serializer.ByteOutputStream, payload FieldsPayload) error

	// Deserialize reads one payload of this TypeID from in.
	Deserialize(in *serializer.ByteInputStream) (FieldsPayload, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[TypeID]ChunkSerializer{}
)

// Register associates id with s. Called from protocol package init
// functions; a duplicate registration of the same TypeID is a
// programming error.
func Register(id TypeID, s ChunkSerializer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[id]; exists {
		panic(chunkerr.Programming(component, "TypeID %q registered twice", id))
	}
	registry[id] = s
}

func lookup(id TypeID) (ChunkSerializer, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := registry[id]
	return s, ok
}

// serializePayload runs payload's registered ChunkSerializer and adds
// the result's bit length to the process-wide serialized-bits counter.
// A payload that implements Validatable and reports failures is not
// serialized: every failure is aggregated into one UnsupportedOperation.
func serializePayload(payload FieldsPayload) ([]byte, error) {
	s, ok := lookup(payload.TypeID())
	if !ok {
		return nil, chunkerr.Unsupported(component, "no ChunkSerializer registered for TypeID %q", payload.TypeID())
	}
	if v, ok := payload.(Validatable); ok {
		if err := chunkerr.Aggregate(component, v.Validate()...); err != nil {
			return nil, err
		}
	}
	out := serializer.NewByteOutputStream()
	if err := s.Serialize(out, payload); err != nil {
		return nil, err
	}
	b := out.Bytes()
	telemetry.AddSerialized(int64(len(b)) * 8)
	return b, nil
}

// DeserializeFields decodes one FieldsChunk of the given TypeID from b
// and adds the bit length of b to the process-wide deserialized-bits
// counter.
//
// A registered Deserialize that runs out of input before completing its
// schema is still a hard error: there is no partial payload value to
// wrap. But when Deserialize succeeds while leaving bytes in b unread —
// the schema it decoded is shorter than what b actually holds, as
// happens when a fragment boundary lands inside a larger FieldsChunk's
// encoding — the resulting chunk is still returned, flagged Improper
// rather than rejected outright, per §4.1's "deserialization cannot
// satisfy the schema" rule.
func DeserializeFields(id TypeID, b []byte) (*FieldsChunk, error) {
	s, ok := lookup(id)
	if !ok {
		return nil, chunkerr.Unsupported(component, "no ChunkSerializer registered for TypeID %q", id)
	}
	in := serializer.NewByteInputStream(b)
	payload, err := s.Deserialize(in)
	if err != nil {
		return nil, err
	}
	telemetry.AddDeserialized(int64(len(b)) * 8)
	fc := NewFieldsChunk(payload)
	if in.RemainingSize() != 0 {
		fc.flags = fc.flags.MarkImproper()
	}
	return fc, nil
}
