// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stream implements the per-file Input Buffer (a byte-at-a-time
// cursor over a container's blocks, driven by an interval index) and the
// typed decoders layered on top of it that interpret its bytes as offsets,
// edits, clips, flags, read IDs, or quality-group membership.
package stream

import (
	"fmt"
	"sort"

	"github.com/biogo/referee/block"
	"github.com/biogo/referee/genome"
	"github.com/biogo/referee/xindex"
)

// Buffer is a per-stream cursor: given a query, it enqueues overlapping
// blocks, decompresses them on demand, and exposes a byte-at-a-time and
// N-bytes API. A Buffer owns exactly one file handle, released by Close on
// every exit path.
type Buffer struct {
	reader  *block.Reader
	decoder *block.Decoder
	trees   map[int]*xindex.Tree

	pending []xindex.Block
	deque   []byte

	lastHead    xindex.Block
	headChanged bool
}

// Open opens the container at path and builds its per-chromosome interval
// index from tuples (already partitioned to this stream's suffix by the
// caller, e.g. via xindex.ParseSidecar).
func Open(path string, tuples []genome.Interval) (*Buffer, error) {
	r, err := block.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}

	members, err := r.Members()
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("stream: %w", err)
	}

	trees, err := xindex.Build(members, tuples)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("stream: %w", err)
	}

	return &Buffer{
		reader:  r,
		decoder: block.NewDecoder(),
		trees:   trees,
	}, nil
}

// Close releases the buffer's file handle. b must not be used afterward.
func (b *Buffer) Close() error {
	err := b.reader.Close()
	*b = Buffer{}
	return err
}

// LoadResult reports the outcome of LoadOverlappingBlock.
type LoadResult struct {
	// Empty is true when the query matched no blocks (EmptyRegion):
	// not an error, the session emits zero records.
	Empty bool

	FirstBlockChromosome    int
	FirstBlockStartOffset   int
	FirstBlockNumAlignments uint64
	IsTranscriptStart       bool
}

func (b *Buffer) sortedChromosomes() []int {
	cs := make([]int, 0, len(b.trees))
	for c := range b.trees {
		cs = append(cs, c)
	}
	sort.Ints(cs)
	return cs
}

// LoadOverlappingBlock clears the pending queue and byte deque, then
// selects and begins decoding the blocks relevant to the query:
//
//   - if atNumAlignments is non-nil, the chosen block is the last block
//     (scanning all trees in ascending chromosome, then physical, order)
//     whose NumAlignments is strictly less than *atNumAlignments; only that
//     single block is decoded and the pending queue is left empty.
//   - else if chromo == -1, every block from every tree is enqueued in
//     order, de-duplicated by file offset (adjacent trees may share a
//     boundary block).
//   - else, the tree for chromo is looked up; a missing or empty tree
//     yields LoadResult{Empty: true}. The chromosome's first available
//     start clamps up a start below it, setting IsTranscriptStart.
//     Overlapping blocks are enqueued via FindOverlapping(start, end).
//
// In all but the EmptyRegion and error cases, the head block is decoded
// immediately.
func (b *Buffer) LoadOverlappingBlock(chromo, start, end int, atNumAlignments *uint64) (LoadResult, error) {
	b.pending = nil
	b.deque = nil
	b.lastHead = xindex.Block{}
	b.headChanged = false

	if atNumAlignments != nil {
		var chosen *xindex.Block
		for _, c := range b.sortedChromosomes() {
			for _, blk := range b.trees[c].Intervals() {
				blk := blk
				if blk.NumAlignments < *atNumAlignments {
					chosen = &blk
				}
			}
		}
		if chosen == nil {
			return LoadResult{}, fmt.Errorf("stream: %w: no block with num_alignments < %d", ErrNoSuchAlignmentPoint, *atNumAlignments)
		}
		b.pending = []xindex.Block{*chosen}
		return b.decodeHead()
	}

	if chromo == -1 {
		var blocks []xindex.Block
		for _, c := range b.sortedChromosomes() {
			for _, blk := range b.trees[c].Intervals() {
				if len(blocks) == 0 || blocks[len(blocks)-1].FileOffset != blk.FileOffset {
					blocks = append(blocks, blk)
				}
			}
		}
		if len(blocks) == 0 {
			return LoadResult{Empty: true}, nil
		}
		b.pending = blocks
		return b.decodeHead()
	}

	tree, ok := b.trees[chromo]
	if !ok {
		return LoadResult{Empty: true}, nil
	}
	first, ok := tree.FirstInterval()
	if !ok {
		return LoadResult{Empty: true}, nil
	}

	clamped := false
	effectiveStart := start
	if start < first.StartOffset {
		effectiveStart = first.StartOffset
		clamped = true
	}

	overlapping := tree.FindOverlapping(effectiveStart, end)
	if len(overlapping) == 0 {
		return LoadResult{Empty: true}, nil
	}

	b.pending = overlapping
	result, err := b.decodeHead()
	if err != nil {
		return result, err
	}
	result.IsTranscriptStart = result.IsTranscriptStart || clamped
	return result, nil
}

// decodeHead decodes the first pending block into the deque and reports
// its start offset, alignment count, and transcript-start status.
func (b *Buffer) decodeHead() (LoadResult, error) {
	if len(b.pending) == 0 {
		return LoadResult{Empty: true}, nil
	}
	head := b.pending[0]
	if err := b.decodeNext(); err != nil {
		return LoadResult{}, err
	}
	return LoadResult{
		FirstBlockChromosome:    head.Chromosome,
		FirstBlockStartOffset:   head.StartOffset,
		FirstBlockNumAlignments: head.NumAlignments,
		IsTranscriptStart:       head.IsAligned,
	}, nil
}

// ConsumeBlockTransition reports the block most recently decoded into the
// deque, if any block has been decoded since the last call. It lets a
// caller driving multiple buffers in lock-step (the Stitcher) notice when
// this buffer has crossed into a new block mid-decode, which is how
// "is_transcript_start firing mid-decode" is detected outside of
// LoadOverlappingBlock's initial block.
func (b *Buffer) ConsumeBlockTransition() (xindex.Block, bool) {
	if !b.headChanged {
		return xindex.Block{}, false
	}
	b.headChanged = false
	return b.lastHead, true
}

// decodeNext decompresses the block at the front of the pending queue and
// appends its bytes to the deque.
func (b *Buffer) decodeNext() error {
	if len(b.pending) == 0 {
		return fmt.Errorf("stream: %w", ErrUnexpectedEndOfStream)
	}
	blk := b.pending[0]
	b.pending = b.pending[1:]
	b.lastHead = blk
	b.headChanged = true

	payload, err := b.reader.Payload(block.Member{
		Offset:           blk.FileOffset,
		Size:             blk.CompressedSize,
		DecompressedSize: blk.DecompressedSize,
	})
	if err != nil {
		return fmt.Errorf("stream: %w", err)
	}

	decoded, err := b.decoder.Decode(payload, blk.DecompressedSize)
	if err != nil {
		return fmt.Errorf("stream: %w", err)
	}

	b.deque = append(b.deque, decoded...)
	return nil
}

// HasMoreBytes reports whether the deque or pending queue is nonempty.
func (b *Buffer) HasMoreBytes() bool {
	return len(b.deque) > 0 || len(b.pending) > 0
}

// NextByte returns the next byte, decoding the next pending block if the
// deque is empty. It fails with ErrUnexpectedEndOfStream if both are empty.
func (b *Buffer) NextByte() (byte, error) {
	if len(b.deque) == 0 {
		if len(b.pending) == 0 {
			return 0, fmt.Errorf("stream: %w", ErrUnexpectedEndOfStream)
		}
		if err := b.decodeNext(); err != nil {
			return 0, err
		}
	}
	c := b.deque[0]
	b.deque = b.deque[1:]
	return c, nil
}

// NextBytes drains up to n bytes, decoding additional blocks as needed. It
// fails with ErrUnexpectedEndOfStream if the stream ends mid-sequence.
func (b *Buffer) NextBytes(n int) ([]byte, error) {
	for len(b.deque) < n {
		if len(b.pending) == 0 {
			return nil, fmt.Errorf("stream: %w: wanted %d bytes, have %d", ErrUnexpectedEndOfStream, n, len(b.deque))
		}
		if err := b.decodeNext(); err != nil {
			return nil, err
		}
	}
	out := make([]byte, n)
	copy(out, b.deque[:n])
	b.deque = b.deque[n:]
	return out, nil
}
