package reference

import (
	"io/ioutil"
	"os"
	"testing"

	check "gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestOpenFASTAIndexAndWindow(c *check.C) {
	f, err := ioutil.TempFile("", "referee-fasta-*.fa")
	c.Assert(err, check.IsNil)
	defer os.Remove(f.Name())
	_, err = f.WriteString(">chr1\nACGTACGTAC\nGTACGTACGT\n>chr2\nTTTTGGGGCC\n")
	c.Assert(err, check.IsNil)
	c.Assert(f.Close(), check.IsNil)

	idx, err := OpenFASTAIndex(f.Name(), []string{"chr1", "chr2"})
	c.Assert(err, check.IsNil)
	defer idx.Close()

	b, err := idx.Base(0, 0)
	c.Assert(err, check.IsNil)
	c.Check(b, check.Equals, byte('A'))

	win, err := idx.Window(0, 8, 4)
	c.Assert(err, check.IsNil)
	c.Check(string(win), check.Equals, "ACGT")

	win2, err := idx.Window(1, 0, 4)
	c.Assert(err, check.IsNil)
	c.Check(string(win2), check.Equals, "TTTT")
}

func (s *S) TestUnknownChromosome(c *check.C) {
	f, err := ioutil.TempFile("", "referee-fasta-*.fa")
	c.Assert(err, check.IsNil)
	defer os.Remove(f.Name())
	_, err = f.WriteString(">chr1\nACGT\n")
	c.Assert(err, check.IsNil)
	c.Assert(f.Close(), check.IsNil)

	_, err = OpenFASTAIndex(f.Name(), []string{"chr1", "chr2"})
	c.Check(err, check.NotNil)
}
