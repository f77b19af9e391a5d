// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"testing"

	check "gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestCigarString(c *check.C) {
	cig := Cigar{NewCigarOp(CigarSoftClipped, 2), NewCigarOp(CigarMatch, 10), NewCigarOp(CigarDeletion, 1)}
	c.Check(cig.String(), check.Equals, "2S10M1D")
}

func (s *S) TestCigarRoundTrip(c *check.C) {
	cig, err := ParseCigar([]byte("3S12M1I4M"))
	c.Assert(err, check.IsNil)
	c.Check(cig.String(), check.Equals, "3S12M1I4M")
	c.Check(cig.IsValid(3+12+1+4), check.Equals, true)
}

func (s *S) TestNewReference(c *check.C) {
	ref, err := NewReference("chr1", "", "", 1000, nil, nil)
	c.Assert(err, check.IsNil)
	c.Check(ref.Name(), check.Equals, "chr1")
	c.Check(ref.Len(), check.Equals, 1000)

	_, err = NewReference("chr1", "", "", 0, nil, nil)
	c.Check(err, check.NotNil)
}

func (s *S) TestNewAuxAndParseAux(c *check.C) {
	var tag Tag
	copy(tag[:], "RG")
	a, err := NewAux(tag, 'Z', "group0")
	c.Assert(err, check.IsNil)
	c.Check(a.Tag(), check.Equals, tag)
	c.Check(a.Value(), check.Equals, "group0")

	parsed, err := ParseAux([]byte(a.String()))
	c.Assert(err, check.IsNil)
	c.Check(parsed.Tag(), check.Equals, tag)
	c.Check(parsed.Value(), check.Equals, "group0")
}

func (s *S) TestFlagsString(c *check.C) {
	f := Paired | ProperPair
	c.Check(f.String(), check.Equals, "pP----------")
}

func (s *S) TestRecordMarshalUnmarshalRoundTrip(c *check.C) {
	ref, err := NewReference("chr0", "", "", 1000, nil, nil)
	c.Assert(err, check.IsNil)

	rec := &Record{
		Name:    "read1",
		Ref:     ref,
		Pos:     4,
		MapQ:    30,
		Cigar:   Cigar{NewCigarOp(CigarMatch, 4)},
		Flags:   0,
		MateRef: ref,
		MatePos: 4,
		Seq:     NewSeq([]byte("ACGT")),
	}

	line, err := rec.MarshalSAM(FlagDecimal)
	c.Assert(err, check.IsNil)
	c.Check(string(line), check.Equals, "read1\t0\tchr0\t5\t30\t4M\t=\t5\t0\tACGT\t*")

	var got Record
	c.Assert(got.UnmarshalSAM(line), check.IsNil)
	c.Check(got.Name, check.Equals, "read1")
	c.Check(got.Ref.Name(), check.Equals, "chr0")
	c.Check(got.Pos, check.Equals, 4)
	c.Check(got.Cigar.String(), check.Equals, "4M")
}
