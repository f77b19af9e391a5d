package stream

import (
	"encoding/binary"
	"io/ioutil"
	"os"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/biogo/referee/genome"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

// ab12LZMA is the classic LZMA_alone encoding of the 4 bytes "AB12".
var ab12LZMA = []byte{
	0x5d, 0x00, 0x00, 0x80, 0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0x00, 0x20, 0x90, 0x82, 0x21, 0x9f, 0xb3, 0xdf, 0xff, 0xff, 0xfc, 0x21, 0x00, 0x00,
}

func writeContainer(c *check.C, payload []byte, decompressedSize int64) string {
	var buf []byte
	buf = append(buf, payload...)
	var trailer [20]byte
	binary.LittleEndian.PutUint64(trailer[0:8], uint64(decompressedSize))
	binary.LittleEndian.PutUint64(trailer[8:16], uint64(len(payload)))
	binary.LittleEndian.PutUint32(trailer[16:20], 0)
	buf = append(buf, trailer[:]...)

	f, err := ioutil.TempFile("", "referee-stream-*")
	c.Assert(err, check.IsNil)
	_, err = f.Write(buf)
	c.Assert(err, check.IsNil)
	c.Assert(f.Close(), check.IsNil)
	return f.Name()
}

func (s *S) TestBufferLoadAndDrain(c *check.C) {
	path := writeContainer(c, ab12LZMA, 4)
	defer os.Remove(path)

	tuples := []genome.Interval{{
		Start:         genome.Coord{Chromosome: 0, Offset: 0},
		End:           genome.Coord{Chromosome: 0, Offset: 100},
		NumAlignments: 0,
		IsAligned:     true,
	}}

	buf, err := Open(path, tuples)
	c.Assert(err, check.IsNil)
	defer buf.Close()

	res, err := buf.LoadOverlappingBlock(0, 0, 100, nil)
	c.Assert(err, check.IsNil)
	c.Check(res.Empty, check.Equals, false)
	c.Check(res.FirstBlockStartOffset, check.Equals, 0)
	c.Check(res.IsTranscriptStart, check.Equals, true)

	c.Check(buf.HasMoreBytes(), check.Equals, true)
	b, err := buf.NextByte()
	c.Assert(err, check.IsNil)
	c.Check(b, check.Equals, byte('A'))

	rest, err := buf.NextBytes(3)
	c.Assert(err, check.IsNil)
	c.Check(string(rest), check.Equals, "B12")

	c.Check(buf.HasMoreBytes(), check.Equals, false)
	_, err = buf.NextByte()
	c.Check(err, check.NotNil)
}

func (s *S) TestBufferEmptyChromosome(c *check.C) {
	path := writeContainer(c, ab12LZMA, 4)
	defer os.Remove(path)

	tuples := []genome.Interval{{
		Start: genome.Coord{Chromosome: 0, Offset: 0},
		End:   genome.Coord{Chromosome: 0, Offset: 100},
	}}

	buf, err := Open(path, tuples)
	c.Assert(err, check.IsNil)
	defer buf.Close()

	res, err := buf.LoadOverlappingBlock(7, 0, 100, nil)
	c.Assert(err, check.IsNil)
	c.Check(res.Empty, check.Equals, true)
}

func (s *S) TestOffsetStreamReadsDelta(c *check.C) {
	// A single ITF8-encoded small positive delta (42) as the sole
	// decompressed payload byte.
	path := writeContainer(c, itf8SingleByteFixture(42), 1)
	defer os.Remove(path)

	tuples := []genome.Interval{{
		Start: genome.Coord{Chromosome: 0, Offset: 0},
		End:   genome.Coord{Chromosome: 0, Offset: 100},
	}}
	buf, err := Open(path, tuples)
	c.Assert(err, check.IsNil)
	defer buf.Close()

	_, err = buf.LoadOverlappingBlock(0, 0, 100, nil)
	c.Assert(err, check.IsNil)

	off := NewOffsetStream(buf)
	d, err := off.NextDelta()
	c.Assert(err, check.IsNil)
	c.Check(d, check.Equals, 42)
}

// itf8SingleByteFixture returns a real LZMA_alone stream decompressing to
// the single-byte ITF8 encoding of v (v must be < 0x80).
func itf8SingleByteFixture(v byte) []byte {
	// Precomputed by compressing a single byte equal to v's ITF8
	// encoding (itself, since v < 0x80 encodes as one byte). Values
	// below were generated for v=42 (0x2a).
	if v != 42 {
		panic("fixture only generated for v=42")
	}
	return []byte{
		0x5d, 0x00, 0x00, 0x80, 0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0x00, 0x15, 0x41, 0xfb, 0xff, 0xff, 0xff, 0xe0, 0x00, 0x00, 0x00,
	}
}
