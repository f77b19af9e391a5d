package decompress

import "github.com/biogo/referee/sam"

// Options is a bitset selecting which fields of a Record the Stitcher
// materializes. Fields not requested are still decoded off their streams
// to keep every stream in lock-step, but are left zero on the Record.
// The OptionalFields bit has no effect: the Stitcher never populates
// Record.OptionalFields.
type Options uint8

const (
	SeqField Options = 1 << iota
	FlagsField
	ReadIDField
	OptionalFields
	QualityField

	AllFields = SeqField | FlagsField | ReadIDField | OptionalFields | QualityField
)

// Record is one reconstructed alignment record, as produced by a
// decompression session.
type Record struct {
	Chromosome int
	Position   int

	Flags int
	MAPQ  int
	RNext int

	ReadID            []byte
	ReconstructedSeq  []byte
	Cigar             sam.Cigar
	QualityGroupIndex int
	OptionalFields    map[string]string
}

// RecordSink receives emitted records. Emit's stop return value is the
// session's cancellation channel: once true, the Stitcher aborts after the
// current record, decoding no further blocks.
type RecordSink interface {
	Emit(Record) (stop bool, err error)
}

// SinkFunc adapts a function to a RecordSink.
type SinkFunc func(Record) (bool, error)

// Emit implements RecordSink.
func (f SinkFunc) Emit(r Record) (bool, error) { return f(r) }
