package header

import (
	"strings"
	"testing"

	check "gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

const sampleHead = `
@RL 100
@SQ 0 chr1 248956422
@SQ 1 chr2 242193529
@FM 0 0
@FM 1 4
@MQ 0 0
@MQ 1 60
@RN 0 -1
@RN 1 0
`

func (s *S) TestParse(c *check.C) {
	h, err := Parse(strings.NewReader(sampleHead))
	c.Assert(err, check.IsNil)
	c.Check(h.ReadLen(), check.Equals, 100)
	c.Assert(h.Transcripts(), check.HasLen, 2)
	c.Check(h.Transcripts()[0], check.Equals, Transcript{Name: "chr1", Length: 248956422})

	v, ok := h.Flag(1)
	c.Assert(ok, check.Equals, true)
	c.Check(v, check.Equals, 4)
}

func (s *S) TestRoundTrip(c *check.C) {
	h, err := Parse(strings.NewReader(sampleHead))
	c.Assert(err, check.IsNil)

	for onDisk := 0; onDisk < 2; onDisk++ {
		userFacing, ok := h.Flag(onDisk)
		c.Assert(ok, check.Equals, true)
		back, ok := h.FlagIndex(userFacing)
		c.Assert(ok, check.Equals, true)
		c.Check(back, check.Equals, onDisk)
	}
}

func (s *S) TestMissingReadLen(c *check.C) {
	_, err := Parse(strings.NewReader("@SQ 0 chr1 100\n"))
	c.Check(err, check.NotNil)
}

func (s *S) TestMissingSQ(c *check.C) {
	_, err := Parse(strings.NewReader("@RL 100\n"))
	c.Check(err, check.NotNil)
}
