package xindex

import (
	"strings"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/biogo/referee/block"
	"github.com/biogo/referee/genome"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestParseSidecar(c *check.C) {
	text := strings.Join([]string{
		"offs 0 0:0-0:1000 true",
		"offs 50 0:1000-0:2000 false",
		"edits 0 1:0-1:500 true",
	}, "\n")
	tuples, err := ParseSidecar(strings.NewReader(text))
	c.Assert(err, check.IsNil)
	c.Assert(tuples["offs"], check.HasLen, 2)
	c.Check(tuples["offs"][0].NumAlignments, check.Equals, uint64(0))
	c.Check(tuples["offs"][1].Start, check.Equals, genome.Coord{Chromosome: 0, Offset: 1000})
	c.Assert(tuples["edits"], check.HasLen, 1)
	c.Check(tuples["edits"][0].IsAligned, check.Equals, true)
}

func (s *S) TestBuildBlockCountExceedsTupleCount(c *check.C) {
	blocks := []block.Member{{Offset: 0, Size: 10, DecompressedSize: 5}, {Offset: 10, Size: 10, DecompressedSize: 5}}
	tuples := []genome.Interval{{Start: genome.Coord{0, 0}, End: genome.Coord{0, 100}}}
	_, err := Build(blocks, tuples)
	c.Check(err, check.NotNil)
}

func (s *S) TestBuildSplitsCrossChromosomeInterval(c *check.C) {
	blocks := []block.Member{{Offset: 0, Size: 10, DecompressedSize: 5}}
	tuples := []genome.Interval{{
		Start: genome.Coord{Chromosome: 0, Offset: 50000000},
		End:   genome.Coord{Chromosome: 2, Offset: 1000000},
	}}
	trees, err := Build(blocks, tuples)
	c.Assert(err, check.IsNil)
	c.Assert(trees, check.HasLen, 3)

	b0, ok := trees[0].FirstInterval()
	c.Assert(ok, check.Equals, true)
	c.Check(b0.StartOffset, check.Equals, 50000000)
	c.Check(b0.EndOffset, check.Equals, genome.ChromoMax-1)

	b1, ok := trees[1].FirstInterval()
	c.Assert(ok, check.Equals, true)
	c.Check(b1.StartOffset, check.Equals, 0)
	c.Check(b1.EndOffset, check.Equals, genome.ChromoMax-1)

	b2, ok := trees[2].FirstInterval()
	c.Assert(ok, check.Equals, true)
	c.Check(b2.StartOffset, check.Equals, 0)
	c.Check(b2.EndOffset, check.Equals, 1000000)

	// All fragments share the same underlying compressed bytes.
	c.Check(b0.FileOffset, check.Equals, b1.FileOffset)
	c.Check(b1.FileOffset, check.Equals, b2.FileOffset)
}

func (s *S) TestFindOverlappingFileOffsetTieBreak(c *check.C) {
	blocks := []Block{
		{Chromosome: 0, StartOffset: 100, EndOffset: 200, FileOffset: 40},
		{Chromosome: 0, StartOffset: 150, EndOffset: 250, FileOffset: 10},
		{Chromosome: 0, StartOffset: 0, EndOffset: 50, FileOffset: 0},
	}
	tr := NewTree(blocks)

	got := tr.FindOverlapping(120, 180)
	c.Assert(got, check.HasLen, 2)
	c.Check(got[0].FileOffset, check.Equals, int64(10))
	c.Check(got[1].FileOffset, check.Equals, int64(40))
}

func (s *S) TestEmptyTreeIsRepresentable(c *check.C) {
	tr := NewTree(nil)
	_, ok := tr.FirstInterval()
	c.Check(ok, check.Equals, false)
	c.Check(tr.FindOverlapping(0, 100), check.HasLen, 0)
	c.Check(tr.Intervals(), check.HasLen, 0)
}
