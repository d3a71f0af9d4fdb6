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

// Package bufbytes implements the growing byte accumulator backing
// serializer.ByteOutputStream. It optionally caps itself at a fixed size;
// serializer.NewByteOutputStream always creates it Unbounded.
package bufbytes

// Unbounded disables the size cap: Write always appends every byte given.
const Unbounded = -1

type Bytes struct {
	size int
	buf  []byte
}

// New returns a Bytes accumulator. A non-negative size caps the total
// number of bytes ever accepted by Write; Unbounded removes the cap.
func New(size int) *Bytes {
	return &Bytes{size: size}
}

// Write appends p, truncating at the size cap if one is set. It never
// fails: a write past the cap is silently clipped, matching the
// zerocopy.Writer contract used elsewhere in the module.
func (b *Bytes) Write(p []byte) {
	if b.size < 0 {
		b.buf = append(b.buf, p...)
		return
	}

	n := (b.size - len(b.buf)) - len(p)
	if n >= 0 {
		b.buf = append(b.buf, p...)
		return
	}

	l := b.size - len(b.buf)
	if l > 0 {
		b.buf = append(b.buf, p[:l]...)
	}
}

// WriteRepeated appends v repeated n times, respecting the same size cap
// as Write. Used by the LengthChunk serializer to emit its fill byte
// without materializing a temporary slice of length n.
func (b *Bytes) WriteRepeated(v byte, n int) {
	for i := 0; i < n; i++ {
		if b.size >= 0 && len(b.buf) >= b.size {
			return
		}
		b.buf = append(b.buf, v)
	}
}

// Len returns the number of bytes currently buffered.
func (b *Bytes) Len() int {
	return len(b.buf)
}

// Bytes returns the buffered content. The caller must not mutate it.
func (b *Bytes) Bytes() []byte {
	return b.buf
}

// Clone returns an owned copy of the buffered content.
func (b *Bytes) Clone() []byte {
	if b.buf == nil {
		return nil
	}
	return append([]byte{}, b.buf...)
}

// Reset empties the accumulator without releasing its backing array.
func (b *Bytes) Reset() {
	b.buf = b.buf[:0]
}
