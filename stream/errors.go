package stream

import "errors"

// ErrUnexpectedEndOfStream is returned when a required byte could not be
// obtained mid-record: fewer bytes remained in the buffer than the caller
// needed, and no further blocks were pending.
var ErrUnexpectedEndOfStream = errors.New("stream: unexpected end of stream")

// ErrNoSuchAlignmentPoint is returned when an at_num_alignments seek has no
// matching block: no block has NumAlignments strictly less than the
// requested count.
var ErrNoSuchAlignmentPoint = errors.New("stream: no such alignment point")
