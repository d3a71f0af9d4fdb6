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
	"sort"

	"github.com/pktchunk/pktchunk/bit"
	"github.com/pktchunk/pktchunk/chunkerr"
)

// SequenceChunk is an ordered concatenation of child chunks. Nested
// SequenceChunks are flattened at construction time, so a SequenceChunk
// never appears as a direct child of another — Children always returns
// the flat list.
type SequenceChunk struct {
	children []Chunk
	offsets  []bit.Length // cumulative offsets, computed lazily
	hasCum   bool
	length   bit.Length
	flags    Flags
	share    shareState
}

// NewSequenceChunk concatenates children in order, flattens any nested
// sequences, and then applies the §4.2 merge pass: adjacent children are
// folded together wherever TryMerge accepts the pair. A result left with
// exactly one child after merging collapses to that child directly
// rather than a one-element SequenceChunk wrapper, per §4.2's "a
// SequenceChunk containing exactly one element after merging collapses
// to that element."
//
// Each child is marked shared, since it is now reachable both through
// the caller's reference (if any) and through this sequence. The result
// is immutable when every child is.
func NewSequenceChunk(children ...Chunk) Chunk {
	c := &SequenceChunk{flags: Flags{Immutable: len(children) > 0}, share: newShareState()}
	for _, ch := range children {
		c.appendFlatten(ch)
	}
	c.mergeChildren()
	if len(c.children) == 1 {
		return c.children[0]
	}
	return c
}

func (c *SequenceChunk) appendFlatten(ch Chunk) {
	if sub, ok := ch.(*SequenceChunk); ok {
		for _, grandchild := range sub.children {
			c.appendFlatten(grandchild)
		}
		return
	}
	MarkShared(ch)
	c.children = append(c.children, ch)
	c.length += ch.Len()
	c.flags = c.flags.Merge(ch.Flags())
	c.hasCum = false
}

// mergeChildren scans c.children left to right, folding each child into
// the previous one whenever TryMerge accepts the pair. It is run after
// every structural change, per §4.2's "after any construction that
// yields a SequenceChunk, the implementation scans adjacent pairs and
// merges". Total length and aggregate flags are unaffected by merging
// and are not recomputed.
func (c *SequenceChunk) mergeChildren() {
	if len(c.children) < 2 {
		return
	}
	merged := make([]Chunk, 0, len(c.children))
	merged = append(merged, c.children[0])
	for _, ch := range c.children[1:] {
		last := merged[len(merged)-1]
		if combined, ok := TryMerge(last, ch); ok {
			merged[len(merged)-1] = combined
			continue
		}
		merged = append(merged, ch)
	}
	c.children = merged
	c.hasCum = false
}

func (c *SequenceChunk) Kind() Kind      { return KindSequence }
func (c *SequenceChunk) Len() bit.Length { return c.length }
func (c *SequenceChunk) Flags() Flags    { return c.flags }

// Children returns the flattened list of c's direct children. The
// caller must not mutate the returned slice.
func (c *SequenceChunk) Children() []Chunk {
	return c.children
}

func (c *SequenceChunk) MakeImmutable() {
	c.flags.Immutable = true
	for _, ch := range c.children {
		ch.MakeImmutable()
	}
}

func (c *SequenceChunk) clone() *SequenceChunk {
	children := make([]Chunk, len(c.children))
	copy(children, c.children)
	return &SequenceChunk{
		children: children,
		length:   c.length,
		flags:    c.flags,
		share:    newShareState(),
	}
}

// Append returns a sequence with ch appended, copy-on-write, re-running
// the §4.2 merge pass so ch merges into the last child when possible.
// Unlike NewSequenceChunk, Append cannot collapse to a bare non-sequence
// Chunk: its signature guarantees callers a *SequenceChunk back.
func (c *SequenceChunk) Append(ch Chunk) *SequenceChunk {
	AssertMutable(c)
	target := c
	if c.share.isShared() {
		target = c.clone()
	}
	target.appendFlatten(ch)
	target.mergeChildren()
	return target
}

// cumulative returns the lazily-computed cumulative start offset of
// each child: offsets[i] is the bit offset of children[i] from the
// start of the sequence. It is computed once and cached until the next
// structural mutation.
func (c *SequenceChunk) cumulative() []bit.Length {
	if c.hasCum {
		return c.offsets
	}
	offsets := make([]bit.Length, len(c.children))
	var running bit.Length
	for i, ch := range c.children {
		offsets[i] = running
		running += ch.Len()
	}
	c.offsets = offsets
	c.hasCum = true
	return offsets
}

// ChildAt resolves the child chunk covering bit offset pos, using index
// hint as an O(1) resume point when it still covers pos. A hint that
// misses (because the sequence changed, or pos moved elsewhere) falls
// back to a binary search over the cumulative offsets. It returns the
// child, that child's own start offset within the sequence, and the
// index to pass back in as the next call's hint.
func (c *SequenceChunk) ChildAt(pos bit.Length, hint int) (child Chunk, childStart bit.Length, index int) {
	if pos < 0 || pos > c.length {
		panic(chunkerr.Programming(component, "SequenceChunk position %d out of bounds for length %d", pos, c.length))
	}
	offsets := c.cumulative()
	n := len(c.children)
	if n == 0 {
		panic(chunkerr.Programming(component, "ChildAt called on an empty SequenceChunk"))
	}
	if hint >= 0 && hint < n {
		start := offsets[hint]
		end := start + c.children[hint].Len()
		if pos >= start && (pos < end || (pos == end && hint == n-1)) {
			return c.children[hint], start, hint
		}
	}
	i := sort.Search(n, func(i int) bool { return offsets[i] > pos }) - 1
	if i < 0 {
		i = 0
	}
	return c.children[i], offsets[i], i
}
