package stream

import (
	"fmt"

	"github.com/biogo/referee/header"
)

// Flags is the remapped flag/MAPQ/RNEXT triple for one record, in
// user-facing form.
type Flags struct {
	Flag  int
	MAPQ  int
	RNext int
}

// FlagsStream decodes the flag/MAPQ/RNEXT triple, remapping each on-disk
// small integer to its user-facing value via the header's bijections.
type FlagsStream struct {
	buf *Buffer
	hdr *header.Header
}

// NewFlagsStream wraps buf as a FlagsStream, remapping via hdr.
func NewFlagsStream(buf *Buffer, hdr *header.Header) *FlagsStream {
	return &FlagsStream{buf: buf, hdr: hdr}
}

// HasMore reports whether another triple is available.
func (s *FlagsStream) HasMore() bool { return s.buf.HasMoreBytes() }

// Next decodes the next record's flag, MAPQ and RNEXT fields, in that
// order, and remaps each via the header.
func (s *FlagsStream) Next() (Flags, error) {
	flagIdx, err := readITF8(s.buf)
	if err != nil {
		return Flags{}, err
	}
	mapqIdx, err := readITF8(s.buf)
	if err != nil {
		return Flags{}, err
	}
	rnextIdx, err := readITF8(s.buf)
	if err != nil {
		return Flags{}, err
	}

	flag, ok := s.hdr.Flag(int(flagIdx))
	if !ok {
		return Flags{}, fmt.Errorf("stream: unknown on-disk flag index %d", flagIdx)
	}
	mapq, ok := s.hdr.MAPQ(int(mapqIdx))
	if !ok {
		return Flags{}, fmt.Errorf("stream: unknown on-disk mapq index %d", mapqIdx)
	}
	rnext, ok := s.hdr.RNext(int(rnextIdx))
	if !ok {
		return Flags{}, fmt.Errorf("stream: unknown on-disk rnext index %d", rnextIdx)
	}

	return Flags{Flag: flag, MAPQ: mapq, RNext: rnext}, nil
}
