package decompress

import (
	"fmt"

	"github.com/biogo/referee/reference"
	"github.com/biogo/referee/stream"
)

// reconstructSequence rebuilds a read's sequence per the Stitcher algorithm:
// start from the reference window of length readLen at (chromo, pos),
// apply edits in order (substitutions change a base, insertions lengthen,
// deletions shorten), then splice the clips onto the front and back.
func reconstructSequence(ref reference.Source, chromo, pos, readLen int, leftClip, rightClip []byte, ops []stream.EditOp) ([]byte, error) {
	window, err := ref.Window(chromo, pos, readLen)
	if err != nil {
		return nil, fmt.Errorf("decompress: reference window: %w", err)
	}
	seq := append([]byte(nil), window...)

	for _, op := range ops {
		switch op.Opcode {
		case stream.OpSubstitution:
			if op.Position < 0 || op.Position >= len(seq) {
				return nil, fmt.Errorf("decompress: %w: substitution position %d outside [0,%d)", ErrMalformedEditScript, op.Position, len(seq))
			}
			seq[op.Position] = op.Base
		case stream.OpInsertion:
			if op.Position < 0 || op.Position > len(seq) {
				return nil, fmt.Errorf("decompress: %w: insertion position %d outside [0,%d]", ErrMalformedEditScript, op.Position, len(seq))
			}
			out := make([]byte, 0, len(seq)+len(op.Bases))
			out = append(out, seq[:op.Position]...)
			out = append(out, op.Bases...)
			out = append(out, seq[op.Position:]...)
			seq = out
		case stream.OpDeletion:
			end := op.Position + op.Length
			if op.Position < 0 || end > len(seq) {
				return nil, fmt.Errorf("decompress: %w: deletion [%d,%d) outside [0,%d]", ErrMalformedEditScript, op.Position, end, len(seq))
			}
			seq = append(seq[:op.Position:op.Position], seq[end:]...)
		default:
			return nil, fmt.Errorf("decompress: %w: unknown opcode %d", ErrMalformedEditScript, op.Opcode)
		}
	}

	out := make([]byte, 0, len(leftClip)+len(seq)+len(rightClip))
	out = append(out, leftClip...)
	out = append(out, seq...)
	out = append(out, rightClip...)
	return out, nil
}
