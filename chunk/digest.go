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

import "github.com/cespare/xxhash/v2"

// Digest returns a fingerprint of c's serialized bytes, for log
// correlation and cheap equality checks between chunks built from
// unrelated code paths. It is not a cryptographic hash and two chunks
// with the same Digest are not guaranteed identical, only very likely
// to be.
func Digest(c Chunk) (uint64, error) {
	b, err := ToBytes(c)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(b), nil
}
