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

import "github.com/pktchunk/pktchunk/bit"

// Direction records which end of a chunk an Iterator walks from. It
// changes how PeekNext interprets Position: a Forward iterator's
// Position is an absolute bit offset from the start of the chunk, the
// same coordinate ChildAt and PeekRange use directly; a Backward
// iterator's Position is a distance from the *end*, mirroring Packet's
// trailer-pop offset, and PeekNext converts it to an absolute offset
// before dispatching.
type Direction bool

const (
	Forward  Direction = true
	Backward Direction = false
)

// Iterator is the (direction, position, index) triple every traversal of
// a chunk uses — Packet's header/trailer pop offsets, ChunkQueue's front
// offset. Position is authoritative and always grows as the iterator
// advances, regardless of Dir (see Direction). Index is an advisory hint
// that lets SequenceChunk.ChildAt resume in roughly O(1) after a
// contiguous traversal instead of binary-searching the cumulative-offset
// table on every call; a stale Index (one that no longer covers the
// position being resolved) is silently recomputed.
type Iterator struct {
	Dir      Direction
	Position bit.Length
	Index    int
}

// NewIterator returns an Iterator positioned at pos with no resume hint.
func NewIterator(dir Direction, pos bit.Length) Iterator {
	return Iterator{Dir: dir, Position: pos, Index: -1}
}

// Advance returns a copy of it moved by delta bits and carrying index as
// its new resume hint. Position always grows by delta, whichever
// direction it walks: a Backward iterator's Position is a distance from
// the end, and that distance grows the same way a Forward iterator's
// start-relative Position does.
func (it Iterator) Advance(delta bit.Length, index int) Iterator {
	it.Position += delta
	it.Index = index
	return it
}

// Seek returns a copy of it repositioned at pos, discarding the resume
// hint since an arbitrary seek invalidates it.
func (it Iterator) Seek(pos bit.Length) Iterator {
	it.Position = pos
	it.Index = -1
	return it
}
