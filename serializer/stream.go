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

// Package serializer implements the byte-stream layer (§6.2 of the wire
// format contract): ByteOutputStream / ByteInputStream. Chunk variants
// never touch []byte directly during serialization; they write through a
// ByteOutputStream and read through a ByteInputStream, so the accounting
// (position, remaining size, network byte order) lives in exactly one
// place.
package serializer

import (
	"encoding/binary"
	"net"

	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/pktchunk/pktchunk/internal/bufbytes"
	"github.com/pktchunk/pktchunk/internal/zerocopy"
)

// sink is the minimal write surface a ByteOutputStream needs, satisfied by
// both bufbytes.Bytes and a pooledSink wrapping a bytebufferpool.ByteBuffer.
type sink interface {
	Write(p []byte)
	Bytes() []byte
	Len() int
	Reset()
}

var pool bytebufferpool.Pool

type pooledSink struct {
	bb *bytebufferpool.ByteBuffer
}

func (s *pooledSink) Write(p []byte) { _, _ = s.bb.Write(p) }
func (s *pooledSink) Bytes() []byte  { return s.bb.B }
func (s *pooledSink) Len() int       { return len(s.bb.B) }
func (s *pooledSink) Reset()         { s.bb.Reset() }

// ByteOutputStream is an append-only byte sink that tracks its own write
// position. Integers are written in network byte order.
type ByteOutputStream struct {
	sink sink
	pos  int64
}

// NewByteOutputStream returns an unbounded, unpooled output stream.
func NewByteOutputStream() *ByteOutputStream {
	return &ByteOutputStream{sink: bufbytes.New(bufbytes.Unbounded)}
}

// NewPooledByteOutputStream borrows its backing buffer from a shared
// bytebufferpool.Pool. Call Release when done to return the buffer to the
// pool; a stream that is never released simply gets garbage collected.
func NewPooledByteOutputStream() *ByteOutputStream {
	return &ByteOutputStream{sink: &pooledSink{bb: pool.Get()}}
}

// Release returns a pooled stream's backing buffer to the shared pool. It
// is a no-op for streams created with NewByteOutputStream.
func (s *ByteOutputStream) Release() {
	if ps, ok := s.sink.(*pooledSink); ok {
		pool.Put(ps.bb)
	}
}

// WriteByte appends a single byte.
func (s *ByteOutputStream) WriteByte(b byte) {
	s.sink.Write([]byte{b})
	s.pos++
}

// WriteBytes appends src[offset : offset+length]. length == -1 means "to
// the end of src".
func (s *ByteOutputStream) WriteBytes(src []byte, offset, length int64) error {
	if offset < 0 || offset > int64(len(src)) {
		return errors.Errorf("serializer: offset %d out of range [0,%d]", offset, len(src))
	}
	end := int64(len(src))
	if length >= 0 {
		end = offset + length
		if end > int64(len(src)) {
			return errors.Errorf("serializer: length %d exceeds available %d bytes", length, int64(len(src))-offset)
		}
	}
	s.sink.Write(src[offset:end])
	s.pos += end - offset
	return nil
}

// WriteByteRepeatedly appends val, count times.
func (s *ByteOutputStream) WriteByteRepeatedly(val byte, count int) {
	if count <= 0 {
		return
	}
	if bb, ok := s.sink.(*bufbytesSink); ok {
		bb.WriteRepeated(val, count)
		s.pos += int64(count)
		return
	}
	rep := make([]byte, count)
	for i := range rep {
		rep[i] = val
	}
	s.sink.Write(rep)
	s.pos += int64(count)
}

// bufbytesSink lets WriteByteRepeatedly avoid allocating a temporary fill
// slice when the sink happens to be a *bufbytes.Bytes.
type bufbytesSink = bufbytes.Bytes

// WriteUint16 writes v in network byte order.
func (s *ByteOutputStream) WriteUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	s.sink.Write(b[:])
	s.pos += 2
}

// WriteUint32 writes v in network byte order.
func (s *ByteOutputStream) WriteUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	s.sink.Write(b[:])
	s.pos += 4
}

// WriteIPv4Address writes the 4-byte big-endian form of ip.
func (s *ByteOutputStream) WriteIPv4Address(ip net.IP) error {
	v4 := ip.To4()
	if v4 == nil {
		return errors.Errorf("serializer: %s is not an IPv4 address", ip)
	}
	s.sink.Write(v4)
	s.pos += 4
	return nil
}

// WriteIPv6Address writes the 16-byte form of ip.
func (s *ByteOutputStream) WriteIPv6Address(ip net.IP) error {
	v6 := ip.To16()
	if v6 == nil || ip.To4() != nil {
		return errors.Errorf("serializer: %s is not an IPv6 address", ip)
	}
	s.sink.Write(v6)
	s.pos += 16
	return nil
}

// Position returns the number of bytes written so far.
func (s *ByteOutputStream) Position() int64 {
	return s.pos
}

// Size is an alias of Position kept for symmetry with ByteInputStream.
func (s *ByteOutputStream) Size() int64 {
	return int64(s.sink.Len())
}

// CopyBytes returns an owned copy of [offset, offset+length) of the
// written content.
func (s *ByteOutputStream) CopyBytes(offset, length int64) ([]byte, error) {
	b := s.sink.Bytes()
	if offset < 0 || length < 0 || offset+length > int64(len(b)) {
		return nil, errors.Errorf("serializer: window [%d,%d) out of range [0,%d)", offset, offset+length, len(b))
	}
	out := make([]byte, length)
	copy(out, b[offset:offset+length])
	return out, nil
}

// Bytes returns the written content without copying. The caller must not
// mutate it.
func (s *ByteOutputStream) Bytes() []byte {
	return s.sink.Bytes()
}

// ByteInputStream is a read-only, zero-copy cursor over a byte slice.
// Integers are read in network byte order.
type ByteInputStream struct {
	all  []byte
	buf  zerocopy.Buffer
	pos  int64
	size int64
}

// NewByteInputStream wraps b for zero-copy reads. The caller must not
// mutate b for as long as the stream (or any slice it has returned) is in
// use.
func NewByteInputStream(b []byte) *ByteInputStream {
	return &ByteInputStream{
		all:  b,
		buf:  zerocopy.NewBuffer(b),
		size: int64(len(b)),
	}
}

// ReadByte reads a single byte.
func (s *ByteInputStream) ReadByte() (byte, error) {
	b, err := s.buf.Read(1)
	if err != nil {
		return 0, err
	}
	s.pos++
	return b[0], nil
}

// ReadBytes reads n bytes without copying.
func (s *ByteInputStream) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		n = int(s.size - s.pos)
	}
	b, err := s.buf.Read(n)
	if err != nil {
		return nil, err
	}
	s.pos += int64(len(b))
	return b, nil
}

// ReadByteRepeatedly reads n bytes and asserts every one equals val,
// matching a LengthChunk's fill-byte convention. It returns an error at
// the first mismatch or on short read.
func (s *ByteInputStream) ReadByteRepeatedly(val byte, n int) error {
	b, err := s.ReadBytes(n)
	if err != nil {
		return err
	}
	if len(b) != n {
		return errors.Errorf("serializer: expected %d fill bytes, read %d", n, len(b))
	}
	for i, got := range b {
		if got != val {
			return errors.Errorf("serializer: fill byte mismatch at offset %d: want 0x%02x got 0x%02x", i, val, got)
		}
	}
	return nil
}

// ReadUint16 reads a big-endian uint16.
func (s *ByteInputStream) ReadUint16() (uint16, error) {
	b, err := s.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	if len(b) != 2 {
		return 0, errors.Errorf("serializer: short read for uint16: got %d bytes", len(b))
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadUint32 reads a big-endian uint32.
func (s *ByteInputStream) ReadUint32() (uint32, error) {
	b, err := s.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	if len(b) != 4 {
		return 0, errors.Errorf("serializer: short read for uint32: got %d bytes", len(b))
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadIPv4Address reads 4 bytes as an IPv4 address.
func (s *ByteInputStream) ReadIPv4Address() (net.IP, error) {
	b, err := s.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	if len(b) != 4 {
		return nil, errors.Errorf("serializer: short read for IPv4 address: got %d bytes", len(b))
	}
	return net.IP(append([]byte{}, b...)), nil
}

// ReadIPv6Address reads 16 bytes as an IPv6 address.
func (s *ByteInputStream) ReadIPv6Address() (net.IP, error) {
	b, err := s.ReadBytes(16)
	if err != nil {
		return nil, err
	}
	if len(b) != 16 {
		return nil, errors.Errorf("serializer: short read for IPv6 address: got %d bytes", len(b))
	}
	return net.IP(append([]byte{}, b...)), nil
}

// Position returns the number of bytes read so far.
func (s *ByteInputStream) Position() int64 {
	return s.pos
}

// Seek repositions the stream at an absolute byte offset.
func (s *ByteInputStream) Seek(pos int64) error {
	if pos < 0 || pos > s.size {
		return errors.Errorf("serializer: seek position %d out of range [0,%d]", pos, s.size)
	}
	s.buf.Write(s.all[pos:])
	s.pos = pos
	return nil
}

// RemainingSize returns the number of unread bytes.
func (s *ByteInputStream) RemainingSize() int64 {
	return s.size - s.pos
}
