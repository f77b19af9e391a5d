package block

import (
	check "gopkg.in/check.v1"
)

// helloWorldLZMA is the classic LZMA_alone encoding of "hello world",
// produced independently of this module (python's lzma.compress with
// FORMAT_ALONE) so the decoder is exercised against a real, foreign-encoded
// stream rather than a round-trip of its own output.
var helloWorldLZMA = []byte{
	0x5d, 0x00, 0x00, 0x80, 0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0x00, 0x34, 0x19, 0x49, 0xee, 0x8d, 0xe9, 0x17, 0x89, 0x3a, 0x33, 0x60, 0x05,
	0xf7, 0xcf, 0x64, 0xff, 0xfb, 0x78, 0x20, 0x00,
}

func (s *S) TestDecodeProducesExpectedBytes(c *check.C) {
	d := NewDecoder()
	out, err := d.Decode(helloWorldLZMA, 11)
	c.Assert(err, check.IsNil)
	c.Check(string(out), check.Equals, "hello world")
}

func (s *S) TestDecodeWrongSizeIsTrailingGarbage(c *check.C) {
	d := NewDecoder()
	_, err := d.Decode(helloWorldLZMA, 5)
	c.Check(err, check.NotNil)
}

func (s *S) TestDecodeIsDeterministic(c *check.C) {
	d := NewDecoder()
	out1, err := d.Decode(helloWorldLZMA, 11)
	c.Assert(err, check.IsNil)
	out2, err := d.Decode(helloWorldLZMA, 11)
	c.Assert(err, check.IsNil)
	c.Check(out1, check.DeepEquals, out2)
}
