package block

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// Decoder decompresses a single member's payload. A Decoder is scoped to
// one block: its native state is released as soon as Decode returns.
type Decoder struct{}

// NewDecoder returns a Decoder for the LZMA-family codec used by the
// container format.
func NewDecoder() *Decoder { return &Decoder{} }

// Decode decompresses payload, which must be exactly decompressedSize bytes
// once inflated. It drives the LZMA reader to completion and fails with
// ErrDecode if decompression errors, produces the wrong number of bytes, or
// leaves trailing undecoded bytes after decompressedSize has been reached
// (trailing garbage in a legitimate member is fatal, matching the original
// unzipData's bytes_read == new_data_size assertion).
func (d *Decoder) Decode(payload []byte, decompressedSize int64) ([]byte, error) {
	lr, err := lzma.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("block: %w: %v", ErrDecode, err)
	}

	out := make([]byte, decompressedSize)
	n, err := io.ReadFull(lr, out)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("block: %w: %v", ErrDecode, err)
	}
	if int64(n) != decompressedSize {
		return nil, fmt.Errorf("block: %w: decoded %d bytes, expected %d", ErrDecode, n, decompressedSize)
	}

	var extra [1]byte
	if m, err := lr.Read(extra[:]); m > 0 || (err != nil && err != io.EOF) {
		return nil, fmt.Errorf("block: %w: trailing garbage after %d bytes", ErrDecode, decompressedSize)
	}

	return out, nil
}
