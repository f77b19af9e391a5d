package decompress

import (
	"bytes"

	check "gopkg.in/check.v1"

	"github.com/biogo/referee/header"
	"github.com/biogo/referee/stream"
)

func (s *S) TestBuildCigarMatchOnly(c *check.C) {
	cig := buildCigar(nil, nil, nil, 10)
	c.Check(cig.String(), check.Equals, "10M")
}

func (s *S) TestBuildCigarWithClipsAndEdits(c *check.C) {
	ops := []stream.EditOp{
		{Opcode: stream.OpSubstitution, Position: 2, Base: 'G'},
	}
	cig := buildCigar([]byte("AC"), []byte("TT"), ops, 8)
	c.Check(cig.String(), check.Equals, "2S2M1X5M2S")
}

func (s *S) TestWriteSAMLike(c *check.C) {
	hdrText := "@RL 4\n@SQ 0 chr0 1000\n@SQ 1 chr1 500\n@FM 0 0\n@MQ 0 30\n@RN 0 0\n"
	hdr, err := header.Parse(bytes.NewBufferString(hdrText))
	c.Assert(err, check.IsNil)

	rec := Record{
		Chromosome:       0,
		Position:         4,
		Flags:            0,
		MAPQ:             30,
		RNext:            0,
		ReadID:           []byte("read1"),
		ReconstructedSeq: []byte("ACGT"),
		Cigar:            buildCigar(nil, nil, nil, 4),
	}

	var buf bytes.Buffer
	c.Assert(WriteSAMLike(&buf, rec, hdr), check.IsNil)

	line := buf.String()
	c.Check(line, check.Equals, "read1\t0\tchr0\t5\t30\t4M\t=\t5\t0\tACGT\t*\n")
}
