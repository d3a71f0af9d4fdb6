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

// TryMerge attempts to combine two adjacent chunks a (earlier) and b
// (later) into a single chunk that represents their concatenation. It
// reports false when no cheaper representation exists and the caller
// should keep both chunks as separate SequenceChunk children.
//
// FieldsChunk is deliberately excluded even when both sides share a
// TypeID: merging two parsed payloads into one is protocol-specific
// (concatenating two ApplicationHeaders is not the same as lengthening
// one), so the decision is left to the protocol package rather than
// guessed at here.
func TryMerge(a, b Chunk) (Chunk, bool) {
	switch av := a.(type) {
	case *EmptyChunk:
		return b, true
	case *LengthChunk:
		bv, ok := b.(*LengthChunk)
		if !ok || bv.fill != av.fill {
			break
		}
		return NewLengthChunkFill(av.length+bv.length, av.fill), true
	case *BytesChunk:
		bv, ok := b.(*BytesChunk)
		if !ok {
			break
		}
		merged := make([]byte, 0, len(av.data)+len(bv.data))
		merged = append(merged, av.data...)
		merged = append(merged, bv.data...)
		return NewBytesChunk(merged), true
	case *SliceChunk:
		bv, ok := b.(*SliceChunk)
		if !ok || bv.base != av.base {
			break
		}
		if av.offset+av.length != bv.offset {
			break
		}
		return NewSliceChunk(av.base, av.offset, av.length+bv.length), true
	}
	if _, ok := b.(*EmptyChunk); ok {
		return a, true
	}
	return nil, false
}
