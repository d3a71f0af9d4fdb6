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

// Package bit standardizes chunk lengths and offsets on bits, with a byte
// convenience layer on top. Every length and offset that crosses a chunk
// API boundary is a Length; call sites that only ever deal in whole bytes
// use Bytes/FromBytes instead of hand-rolled "<< 3" arithmetic.
package bit

// Length is a count of bits. Negative values other than ToEnd are invalid
// at API boundaries.
type Length int64

// ToEnd is the sentinel meaning "from the iterator position to the end of
// the chunk", accepted wherever the spec allows length == -1.
const ToEnd Length = -1

// Bytes converts a whole number of bytes to a Length.
func Bytes(n int64) Length {
	return Length(n * 8)
}

// FromBytes is an alias of Bytes kept for call sites that read more
// naturally with the verb form.
func FromBytes(n int) Length {
	return Bytes(int64(n))
}

// Bytes reports the byte length, rounding up. Callers that require
// byte-alignment should check Whole first.
func (l Length) Bytes() int64 {
	if l < 0 {
		return int64(l)
	}
	return (int64(l) + 7) / 8
}

// Whole reports whether l is an exact multiple of 8 bits.
func (l Length) Whole() bool {
	return l >= 0 && int64(l)%8 == 0
}

// IsToEnd reports whether l is the "to end" sentinel.
func (l Length) IsToEnd() bool {
	return l == ToEnd
}

// Valid reports whether l is a legal length: non-negative, or the ToEnd
// sentinel.
func (l Length) Valid() bool {
	return l >= 0 || l == ToEnd
}
