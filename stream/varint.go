package stream

import (
	"fmt"
	"math/bits"

	"github.com/biogo/referee/cram/encoding/itf8"
)

// readITF8 reads one ITF8-encoded int32 from buf. ITF8 is self-delimiting
// from its leading byte (as in the CRAM format specification, reused here
// from cram/encoding/itf8), so the width is determined from the first byte
// before the remaining bytes are read.
func readITF8(buf *Buffer) (int32, error) {
	b0, err := buf.NextByte()
	if err != nil {
		return 0, err
	}
	n := bits.LeadingZeros8(^(b0 & 0xf0)) + 1
	enc := make([]byte, n)
	enc[0] = b0
	if n > 1 {
		rest, err := buf.NextBytes(n - 1)
		if err != nil {
			return 0, err
		}
		copy(enc[1:], rest)
	}
	v, _, ok := itf8.Decode(enc)
	if !ok {
		return 0, fmt.Errorf("stream: malformed itf8 encoding")
	}
	return v, nil
}

// readBytes reads an ITF8 length prefix followed by that many raw bytes,
// the length-prefixed-bytes grammar shared by the clip and read-ID streams.
func readBytes(buf *Buffer) ([]byte, error) {
	n, err := readITF8(buf)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return buf.NextBytes(int(n))
}
