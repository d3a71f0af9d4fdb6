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

// Package chunkbuffer implements ChunkBuffer, a sparse offset-addressed
// region store, and the ReassemblyBuffer/ReorderBuffer structures built
// on top of it. It is grounded on the same overlap-clipping logic the
// teacher's connstream package used for TCP segment reassembly
// (lastAck vs. incoming seq comparisons), generalized from a byte
// stream to the chunk algebra's merge rules.
package chunkbuffer

import (
	"sort"

	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunk"
	"github.com/pktchunk/pktchunk/chunkerr"
)

const component = "chunkbuffer"

// region is one (offset, chunk) entry of a ChunkBuffer.
type region struct {
	offset bit.Length
	data   chunk.Chunk
}

func (r region) end() bit.Length { return r.offset + r.data.Len() }

// ChunkBuffer is a set of non-overlapping, non-adjacent (offset, chunk)
// regions sorted by offset. Regions that touch are always combined into
// one: by the chunk algebra's merge rules when they allow it, otherwise
// as a flattened SequenceChunk of the two.
type ChunkBuffer struct {
	regions []region
}

// New returns an empty ChunkBuffer.
func New() *ChunkBuffer {
	return &ChunkBuffer{}
}

// GetNumRegions reports how many regions currently exist.
func (b *ChunkBuffer) GetNumRegions() int {
	return len(b.regions)
}

// GetRegionStartOffset returns the start offset of region i.
func (b *ChunkBuffer) GetRegionStartOffset(i int) bit.Length {
	return b.regions[i].offset
}

// GetRegionData returns the chunk stored in region i.
func (b *ChunkBuffer) GetRegionData(i int) chunk.Chunk {
	return b.regions[i].data
}

// Replace writes c at offset, overwriting any bytes it overlaps.
// Regions it overlaps are clipped to the parts outside [offset,
// offset+c.Len()); regions that end up touching the new region are
// merged where the chunk algebra allows it.
func (b *ChunkBuffer) Replace(offset bit.Length, c chunk.Chunk) {
	if offset < 0 {
		panic(chunkerr.Programming(component, "negative region offset %d", offset))
	}
	newEnd := offset + c.Len()

	var kept []region
	for _, r := range b.regions {
		if r.end() <= offset || r.offset >= newEnd {
			kept = append(kept, r)
			continue
		}
		if r.offset < offset {
			kept = append(kept, region{offset: r.offset, data: chunk.PeekRange(r.data, 0, offset-r.offset)})
		}
		if r.end() > newEnd {
			tailLen := r.end() - newEnd
			kept = append(kept, region{offset: newEnd, data: chunk.PeekRange(r.data, r.data.Len()-tailLen, tailLen)})
		}
	}
	kept = append(kept, region{offset: offset, data: c})

	sort.Slice(kept, func(i, j int) bool { return kept[i].offset < kept[j].offset })
	b.regions = mergeAdjacent(kept)
}

// Clear erases [offset, offset+length), splitting any region that
// straddles a boundary of the cleared window.
func (b *ChunkBuffer) Clear(offset, length bit.Length) {
	if offset < 0 || length < 0 {
		panic(chunkerr.Programming(component, "negative clear range [%d,+%d)", offset, length))
	}
	end := offset + length

	var kept []region
	for _, r := range b.regions {
		if r.end() <= offset || r.offset >= end {
			kept = append(kept, r)
			continue
		}
		if r.offset < offset {
			kept = append(kept, region{offset: r.offset, data: chunk.PeekRange(r.data, 0, offset-r.offset)})
		}
		if r.end() > end {
			tailLen := r.end() - end
			kept = append(kept, region{offset: end, data: chunk.PeekRange(r.data, r.data.Len()-tailLen, tailLen)})
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].offset < kept[j].offset })
	b.regions = kept
}

// mergeAdjacent folds any run of touching regions into one, the same
// way Packet.prepend/append combine adjacent pieces: a type-specific
// merge (chunk.TryMerge) where the algebra allows one, or a flattened
// SequenceChunk otherwise. Input must already be sorted by offset and
// non-overlapping.
func mergeAdjacent(sorted []region) []region {
	if len(sorted) == 0 {
		return nil
	}
	out := []region{sorted[0]}
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if last.end() == r.offset {
			last.data = combine(last.data, r.data)
			continue
		}
		out = append(out, r)
	}
	return out
}

// combine concatenates two adjacent chunks, preferring a type-specific
// merge and falling back to a flattened SequenceChunk.
func combine(a, b chunk.Chunk) chunk.Chunk {
	if merged, ok := chunk.TryMerge(a, b); ok {
		return merged
	}
	return chunk.NewSequenceChunk(a, b)
}
