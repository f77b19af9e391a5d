package block

import (
	"encoding/binary"
	"io/ioutil"
	"os"
	"testing"

	check "gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

// appendMember appends a fabricated member (arbitrary payload bytes, not
// necessarily valid LZMA) with a correct trailer to buf and returns the
// result, for exercising the Block Container Reader independent of the
// Block Decoder.
func appendMember(buf []byte, payload []byte, decompressedSize int64) []byte {
	buf = append(buf, payload...)
	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint64(trailer[0:8], uint64(decompressedSize))
	binary.LittleEndian.PutUint64(trailer[8:16], uint64(len(payload)))
	binary.LittleEndian.PutUint32(trailer[16:20], 0)
	return append(buf, trailer[:]...)
}

func writeTemp(c *check.C, data []byte) string {
	f, err := ioutil.TempFile("", "referee-block-*")
	c.Assert(err, check.IsNil)
	_, err = f.Write(data)
	c.Assert(err, check.IsNil)
	c.Assert(f.Close(), check.IsNil)
	return f.Name()
}

func (s *S) TestMembersSumToFileLength(c *check.C) {
	var buf []byte
	buf = appendMember(buf, []byte("aaaa"), 10)
	buf = appendMember(buf, []byte("bb"), 2)
	buf = appendMember(buf, []byte("ccccccc"), 100)

	path := writeTemp(c, buf)
	defer os.Remove(path)

	r, err := Open(path)
	c.Assert(err, check.IsNil)
	defer r.Close()

	members, err := r.Members()
	c.Assert(err, check.IsNil)
	c.Assert(members, check.HasLen, 3)

	var total int64
	for _, m := range members {
		total += m.Size
	}
	c.Check(total, check.Equals, int64(len(buf)))

	c.Check(members[0].DecompressedSize, check.Equals, int64(10))
	c.Check(members[1].DecompressedSize, check.Equals, int64(2))
	c.Check(members[2].DecompressedSize, check.Equals, int64(100))
}

func (s *S) TestCorruptTrailerAbortsBeforeAnyRecord(c *check.C) {
	var buf []byte
	buf = appendMember(buf, []byte("aaaa"), 10)
	buf = appendMember(buf, []byte("bb"), 2)
	// Corrupt the last trailer's payload-size field so it no longer
	// matches the actual on-disk layout.
	binary.LittleEndian.PutUint64(buf[len(buf)-trailerSize+8:], 9999)

	path := writeTemp(c, buf)
	defer os.Remove(path)

	r, err := Open(path)
	c.Assert(err, check.IsNil)
	defer r.Close()

	_, err = r.Members()
	c.Check(err, check.NotNil)
}

func (s *S) TestPayloadRoundTrip(c *check.C) {
	var buf []byte
	buf = appendMember(buf, []byte("hello"), 5)

	path := writeTemp(c, buf)
	defer os.Remove(path)

	r, err := Open(path)
	c.Assert(err, check.IsNil)
	defer r.Close()

	members, err := r.Members()
	c.Assert(err, check.IsNil)
	c.Assert(members, check.HasLen, 1)

	payload, err := r.Payload(members[0])
	c.Assert(err, check.IsNil)
	c.Check(string(payload), check.Equals, "hello")
}
