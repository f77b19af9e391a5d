package decompress

import (
	"fmt"
	"io"
	"sort"

	"github.com/biogo/referee/header"
	"github.com/biogo/referee/sam"
	"github.com/biogo/referee/stream"
)

// buildCigar renders the clips and edit ops applied to a read as a
// sam.Cigar: a leading/trailing CigarSoftClipped run for the clips, a
// CigarMismatch op per substitution, CigarInsertion/CigarDeletion ops for
// insertions and deletions, and CigarMatch runs covering the rest of the
// read.
func buildCigar(leftClip, rightClip []byte, ops []stream.EditOp, readLen int) sam.Cigar {
	var c sam.Cigar
	if len(leftClip) > 0 {
		c = append(c, sam.NewCigarOp(sam.CigarSoftClipped, len(leftClip)))
	}

	matched := 0
	flushMatch := func() {
		if matched > 0 {
			c = append(c, sam.NewCigarOp(sam.CigarMatch, matched))
			matched = 0
		}
	}

	pos := 0
	for _, op := range ops {
		if op.Position > pos {
			matched += op.Position - pos
		}
		flushMatch()
		switch op.Opcode {
		case stream.OpSubstitution:
			c = append(c, sam.NewCigarOp(sam.CigarMismatch, 1))
			pos = op.Position + 1
		case stream.OpInsertion:
			c = append(c, sam.NewCigarOp(sam.CigarInsertion, op.Length))
			pos = op.Position
		case stream.OpDeletion:
			c = append(c, sam.NewCigarOp(sam.CigarDeletion, op.Length))
			pos = op.Position + op.Length
		}
	}
	if readLen > pos {
		matched += readLen - pos
	}
	flushMatch()

	if len(rightClip) > 0 {
		c = append(c, sam.NewCigarOp(sam.CigarSoftClipped, len(rightClip)))
	}
	return c
}

// referenceFor returns a sam.Reference for the named, positively-lengthed
// transcript, falling back to a length of 1 for a zero-length entry (the
// SAM spec requires a reference length in [1, 1<<31)).
func referenceFor(t header.Transcript) (*sam.Reference, error) {
	length := t.Length
	if length <= 0 {
		length = 1
	}
	return sam.NewReference(t.Name, "", "", length, nil, nil)
}

// WriteSAMLike formats rec in the canonical tab-separated textual form
// named by the external interface, by constructing a sam.Record and
// delegating to sam.Record.MarshalSAM: read-id, flags, chromosome name,
// position, mapq, CIGAR, rnext, sequence, and optional fields. Fields rec
// leaves zero (because they weren't requested via Options) render as the
// SAM "unavailable" placeholders ('*' or 0), the same defaults MarshalSAM
// itself applies to an empty Record.
func WriteSAMLike(w io.Writer, rec Record, hdr *header.Header) error {
	transcripts := hdr.Transcripts()
	if rec.Chromosome < 0 || rec.Chromosome >= len(transcripts) {
		return fmt.Errorf("decompress: chromosome %d out of range", rec.Chromosome)
	}
	ref, err := referenceFor(transcripts[rec.Chromosome])
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}

	mateRef := ref
	if rec.RNext != rec.Chromosome {
		if rec.RNext < 0 || rec.RNext >= len(transcripts) {
			return fmt.Errorf("decompress: rnext chromosome %d out of range", rec.RNext)
		}
		mateRef, err = referenceFor(transcripts[rec.RNext])
		if err != nil {
			return fmt.Errorf("decompress: %w", err)
		}
	}

	name := string(rec.ReadID)
	if name == "" {
		name = "*"
	}

	var seq []byte
	if len(rec.ReconstructedSeq) > 0 {
		seq = rec.ReconstructedSeq
	}

	var aux sam.AuxFields
	if len(rec.OptionalFields) > 0 {
		keys := make([]string, 0, len(rec.OptionalFields))
		for k := range rec.OptionalFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if len(k) != 2 {
				continue
			}
			var tag sam.Tag
			copy(tag[:], k)
			a, err := sam.NewAux(tag, 'Z', rec.OptionalFields[k])
			if err != nil {
				return fmt.Errorf("decompress: optional field %s: %w", k, err)
			}
			aux = append(aux, a)
		}
	}

	srec := &sam.Record{
		Name:      name,
		Ref:       ref,
		Pos:       rec.Position,
		MapQ:      byte(rec.MAPQ),
		Cigar:     rec.Cigar,
		Flags:     sam.Flags(rec.Flags),
		MateRef:   mateRef,
		MatePos:   rec.Position,
		Seq:       sam.NewSeq(seq),
		AuxFields: aux,
	}

	line, err := srec.MarshalSAM(sam.FlagDecimal)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	if _, err := w.Write(line); err != nil {
		return err
	}
	_, err = w.Write([]byte{'\n'})
	return err
}
