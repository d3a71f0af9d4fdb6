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
	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunkerr"
)

// FieldsPayload is implemented by protocol-specific structs that want to
// ride inside a FieldsChunk: a parsed ApplicationHeader, a TLV record,
// and so on. TypeID must return one of the constants registered via
// Register in registry.go.
type FieldsPayload interface {
	TypeID() TypeID
}

// Validatable is an optional interface a FieldsPayload can implement to
// report field-level invariant violations. Violations do not prevent a
// FieldsChunk from existing; they set the Incorrect flag instead, per
// the SoftFailure policy in chunkerr.
type Validatable interface {
	Validate() []error
}

// FieldsChunk wraps a typed, structured payload. Its serialized bytes
// are computed lazily and cached: repeated peeks of the same FieldsChunk
// do not re-run the registered ChunkSerializer.
type FieldsChunk struct {
	payload FieldsPayload
	length  bit.Length

	cached   []byte
	hasCache bool

	flags Flags
	share shareState
}

// NewFieldsChunk wraps payload in a mutable FieldsChunk. Its length is
// asked of the TypeID's registered ChunkSerializer; its Incorrect flag
// is set immediately if payload implements Validatable and reports
// errors.
func NewFieldsChunk(payload FieldsPayload) *FieldsChunk {
	s, ok := lookup(payload.TypeID())
	if !ok {
		panic(chunkerr.Programming(component, "no ChunkSerializer registered for TypeID %q", payload.TypeID()))
	}
	c := &FieldsChunk{
		payload: payload,
		length:  s.Length(payload),
		share:   newShareState(),
	}
	c.revalidate()
	return c
}

func (c *FieldsChunk) Kind() Kind      { return KindFields }
func (c *FieldsChunk) Len() bit.Length { return c.length }
func (c *FieldsChunk) Flags() Flags    { return c.flags }
func (c *FieldsChunk) TypeID() TypeID  { return c.payload.TypeID() }

// Payload returns the wrapped FieldsPayload. Callers must not mutate a
// returned payload of an immutable chunk; there is no compile-time way
// to enforce this for an arbitrary struct, so MakeImmutable is the only
// guard in place.
func (c *FieldsChunk) Payload() FieldsPayload {
	return c.payload
}

func (c *FieldsChunk) MakeImmutable() {
	c.flags.Immutable = true
}

func (c *FieldsChunk) clone() *FieldsChunk {
	return &FieldsChunk{
		payload:  c.payload,
		length:   c.length,
		cached:   c.cached,
		hasCache: c.hasCache,
		flags:    c.flags,
		share:    newShareState(),
	}
}

// SetPayload replaces c's payload, copy-on-write, invalidating the
// serialized-bytes cache and re-running validation.
func (c *FieldsChunk) SetPayload(payload FieldsPayload) *FieldsChunk {
	AssertMutable(c)
	if payload.TypeID() != c.payload.TypeID() {
		panic(chunkerr.Programming(component, "SetPayload TypeID mismatch: chunk is %q, payload is %q", c.payload.TypeID(), payload.TypeID()))
	}
	target := c
	if c.share.isShared() {
		target = c.clone()
	}
	s, _ := lookup(payload.TypeID())
	target.payload = payload
	target.length = s.Length(payload)
	target.cached = nil
	target.hasCache = false
	target.revalidate()
	return target
}

func (c *FieldsChunk) revalidate() {
	c.flags.Incorrect = false
	v, ok := c.payload.(Validatable)
	if !ok {
		return
	}
	if err := chunkerr.Aggregate(component, v.Validate()...); err != nil {
		c.flags.Incorrect = true
	}
}

// cachedBytes returns c's serialized form, computing and caching it on
// first use. Subsequent peeks of the same FieldsChunk are O(1).
func (c *FieldsChunk) cachedBytes() ([]byte, error) {
	if c.hasCache {
		return c.cached, nil
	}
	b, err := serializePayload(c.payload)
	if err != nil {
		return nil, err
	}
	c.cached = b
	c.hasCache = true
	return b, nil
}
