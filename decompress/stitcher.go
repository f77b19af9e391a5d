package decompress

import (
	"context"

	"github.com/biogo/referee/genome"
	"github.com/biogo/referee/stream"
)

// drive implements the Stitcher algorithm (§4.G): load the overlapping
// block on every typed stream, initialize the position accumulator from
// the offsets stream's head block, then loop while records remain,
// reconstructing and emitting each one that falls within interval (nil
// interval means "the whole archive").
func (s *Session) drive(ctx context.Context, chromo, start, end int, atNumAlignments *uint64, interval *genome.QueryInterval, sink RecordSink, opts Options) error {
	offsRes, err := s.offs.LoadOverlappingBlock(chromo, start, end, atNumAlignments)
	if err != nil {
		return err
	}
	if _, err := s.edits.LoadOverlappingBlock(chromo, start, end, atNumAlignments); err != nil {
		return err
	}
	if _, err := s.hasEdits.LoadOverlappingBlock(chromo, start, end, atNumAlignments); err != nil {
		return err
	}
	if _, err := s.leftClip.LoadOverlappingBlock(chromo, start, end, atNumAlignments); err != nil {
		return err
	}
	if _, err := s.rightClip.LoadOverlappingBlock(chromo, start, end, atNumAlignments); err != nil {
		return err
	}
	if _, err := s.flags.LoadOverlappingBlock(chromo, start, end, atNumAlignments); err != nil {
		return err
	}
	if _, err := s.ids.LoadOverlappingBlock(chromo, start, end, atNumAlignments); err != nil {
		return err
	}
	if _, err := s.membership.LoadOverlappingBlock(chromo, start, end, atNumAlignments); err != nil {
		return err
	}

	if offsRes.Empty {
		return nil // EmptyRegion: not an error, zero records.
	}

	pos := offsRes.FirstBlockStartOffset
	curChromo := offsRes.FirstBlockChromosome

	// The head block's own transition is already accounted for above;
	// only transitions crossed later, mid-decode, should resynchronize
	// the position accumulator.
	s.offs.ConsumeBlockTransition()

	// On the at_num_alignments path the chosen block begins with record
	// FirstBlockNumAlignments+1; records before the (K+1)-th are decoded
	// past but not emitted.
	var skip uint64
	if atNumAlignments != nil {
		skip = *atNumAlignments - offsRes.FirstBlockNumAlignments
	}

	offsetStream := stream.NewOffsetStream(s.offs)
	editStream := stream.NewEditStream(s.hasEdits, s.edits)
	leftClipStream := stream.NewClipStream(s.leftClip)
	rightClipStream := stream.NewClipStream(s.rightClip)
	flagsStream := stream.NewFlagsStream(s.flags, s.hdr)
	readIDStream := stream.NewReadIDStream(s.ids)
	membershipStream := stream.NewMembershipStream(s.membership)

	readLen := s.hdr.ReadLen()

	for offsetStream.HasMore() {
		delta, err := offsetStream.NextDelta()
		if err != nil {
			return err
		}
		pos += delta

		// A block dequeued mid-decode by this NextDelta call that begins at
		// a transcript boundary resynchronizes the position accumulator to
		// its start, with the delta counted from there, as for the head
		// block above.
		if blk, ok := s.offs.ConsumeBlockTransition(); ok && blk.IsAligned {
			pos = blk.StartOffset + delta
			curChromo = blk.Chromosome
		}

		_, ops, err := editStream.Next()
		if err != nil {
			return err
		}

		leftClip, err := leftClipStream.Next()
		if err != nil {
			return err
		}
		rightClip, err := rightClipStream.Next()
		if err != nil {
			return err
		}
		flagsVal, err := flagsStream.Next()
		if err != nil {
			return err
		}
		readID, err := readIDStream.Next()
		if err != nil {
			return err
		}
		membershipIdx, err := membershipStream.Next()
		if err != nil {
			return err
		}

		if skip > 0 {
			skip--
			continue
		}

		if interval != nil {
			if curChromo == interval.Chromosome && pos >= interval.End {
				break
			}
			if curChromo != interval.Chromosome || pos < interval.Start {
				continue
			}
		}

		seq, err := reconstructSequence(s.ref, curChromo, pos, readLen, leftClip, rightClip, ops)
		if err != nil {
			return err
		}

		rec := Record{
			Chromosome: curChromo,
			Position:   pos,
			Cigar:      buildCigar(leftClip, rightClip, ops, readLen),
		}
		if opts&FlagsField != 0 {
			rec.Flags, rec.MAPQ, rec.RNext = flagsVal.Flag, flagsVal.MAPQ, flagsVal.RNext
		}
		if opts&ReadIDField != 0 {
			rec.ReadID = readID
		}
		if opts&SeqField != 0 {
			rec.ReconstructedSeq = seq
		}
		if opts&QualityField != 0 {
			rec.QualityGroupIndex = membershipIdx
		}

		stop, err := sink.Emit(rec)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
