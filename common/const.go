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

package common

const (
	// App names the metric namespace shared by every promauto counter in
	// the module.
	App = "pktchunk"

	// Version is the module's release tag.
	Version = "v0.0.1"

	// DefaultFillByte is the octet a LengthChunk serializes as when its
	// content is unspecified.
	DefaultFillByte = 0x00

	// StreamChunkSize is a read-block size in bytes, the historical
	// tcpStream buffering size. It is used as the per-read size in the
	// internal/zerocopy tests and benchmarks; ChunkQueue does not consult
	// it.
	StreamChunkSize = 4096
)
