package xindex

import (
	"fmt"

	"github.com/biogo/referee/block"
	"github.com/biogo/referee/genome"
)

// Build joins a stream's container blocks (in physical order) with its
// sidecar tuples (also in physical order) and returns the resulting
// per-chromosome interval trees.
//
// Tuples are paired positionally with blocks: invariant block_count ≤
// tuple_count. Excess trailing tuples beyond len(blocks) are ignored; if
// there are fewer tuples than blocks, Build fails with ErrIndexMismatch. A
// tuple whose interval spans multiple chromosomes is split per the
// fragmentation rule: the first fragment runs [start_offset, ChromoMax) on
// the start chromosome, fully-covered intermediate chromosomes become
// [0, ChromoMax), and the last fragment runs [0, end_offset] on the end
// chromosome. All fragments of a tuple share its block's file offset and
// compressed/decompressed sizes.
func Build(blocks []block.Member, tuples []genome.Interval) (map[int]*Tree, error) {
	if len(tuples) < len(blocks) {
		return nil, fmt.Errorf("xindex: %w: %d blocks but only %d tuples", ErrIndexMismatch, len(blocks), len(tuples))
	}

	perChromo := make(map[int][]Block)
	var order []int // chromosomes in first-seen order, for deterministic Tree construction

	appendFragment := func(frag Block) {
		if _, ok := perChromo[frag.Chromosome]; !ok {
			order = append(order, frag.Chromosome)
		}
		perChromo[frag.Chromosome] = append(perChromo[frag.Chromosome], frag)
	}

	for i, m := range blocks {
		iv := tuples[i]
		base := Block{
			FileOffset:       m.Offset,
			CompressedSize:   m.Size,
			DecompressedSize: m.DecompressedSize,
			NumAlignments:    iv.NumAlignments,
			IsAligned:        iv.IsAligned,
		}

		if !iv.SpansChromosomes() {
			frag := base
			frag.Chromosome = iv.Start.Chromosome
			frag.StartOffset = iv.Start.Offset
			frag.EndOffset = iv.End.Offset
			appendFragment(frag)
			continue
		}

		first := base
		first.Chromosome = iv.Start.Chromosome
		first.StartOffset = iv.Start.Offset
		first.EndOffset = genome.ChromoMax - 1
		appendFragment(first)

		for c := iv.Start.Chromosome + 1; c < iv.End.Chromosome; c++ {
			mid := base
			mid.Chromosome = c
			mid.StartOffset = 0
			mid.EndOffset = genome.ChromoMax - 1
			appendFragment(mid)
		}

		last := base
		last.Chromosome = iv.End.Chromosome
		last.StartOffset = 0
		last.EndOffset = iv.End.Offset
		appendFragment(last)
	}

	trees := make(map[int]*Tree, len(order))
	for _, c := range order {
		trees[c] = NewTree(perChromo[c])
	}
	return trees, nil
}
