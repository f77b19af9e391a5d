// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xindex implements the per-chromosome interval index joining a
// container's enumerated blocks with a sidecar of genomic intervals.
//
// Unlike a BAI-style binning index keyed on a two-dimensional bin scheme, a
// chromosome here is already a single plain integer coordinate space, so
// Tree is a textbook augmented interval tree reduced to a sorted slice plus
// a running maximum-end annotation, rather than a binned index.
package xindex

import "sort"

// Block is a container block enriched with the genomic interval it covers,
// after any cross-chromosome splitting. A Block belongs to exactly one
// chromosome.
type Block struct {
	Chromosome  int
	StartOffset int
	EndOffset   int // inclusive

	FileOffset       int64
	CompressedSize   int64
	DecompressedSize int64

	NumAlignments uint64
	IsAligned     bool
}

// Tree is the interval index for one chromosome.
type Tree struct {
	// blocks holds Block values in physical (file) order, as they were
	// built from the container's member list.
	blocks []Block

	// order holds indices into blocks sorted by StartOffset ascending.
	order []int
	// maxEnd[i] is the maximum EndOffset among blocks[order[0..i]].
	maxEnd []int
}

// NewTree builds a Tree from blocks, which must already be in physical
// (file) order. An empty or nil blocks slice yields a valid, usable empty
// Tree: createChromosomeIntervalTree in the original sealed a tree
// unconditionally even when its accumulator was empty, so empty trees must
// be representable without error.
func NewTree(blocks []Block) *Tree {
	t := &Tree{blocks: blocks}
	t.order = make([]int, len(blocks))
	for i := range t.order {
		t.order[i] = i
	}
	sort.SliceStable(t.order, func(i, j int) bool {
		return blocks[t.order[i]].StartOffset < blocks[t.order[j]].StartOffset
	})
	t.maxEnd = make([]int, len(t.order))
	running := 0
	for i, idx := range t.order {
		if i == 0 || blocks[idx].EndOffset > running {
			running = blocks[idx].EndOffset
		}
		t.maxEnd[i] = running
	}
	return t
}

// Intervals returns the tree's blocks in physical (file) order.
func (t *Tree) Intervals() []Block { return t.blocks }

// FirstInterval returns the block with the smallest StartOffset on this
// chromosome, or ok=false if the tree is empty.
func (t *Tree) FirstInterval() (Block, bool) {
	if len(t.order) == 0 {
		return Block{}, false
	}
	return t.blocks[t.order[0]], true
}

// FindOverlapping returns every block whose [StartOffset, EndOffset]
// intersects [lo, hi], in file-offset order (the invariant 3 tie-break).
func (t *Tree) FindOverlapping(lo, hi int) []Block {
	if len(t.order) == 0 {
		return nil
	}
	// Every candidate overlapping block has StartOffset <= hi. Find the
	// index one past the last such block in start-sorted order.
	upper := sort.Search(len(t.order), func(i int) bool {
		return t.blocks[t.order[i]].StartOffset > hi
	})

	var matches []Block
	for i := upper - 1; i >= 0; i-- {
		if t.maxEnd[i] < lo {
			// No block in [0, i] can reach lo; prune the rest.
			break
		}
		b := t.blocks[t.order[i]]
		if b.EndOffset >= lo {
			matches = append(matches, b)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].FileOffset < matches[j].FileOffset
	})
	return matches
}
