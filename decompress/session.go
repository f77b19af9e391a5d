// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decompress implements the Stitcher: the component that
// orchestrates the header and the six typed streams to reconstruct aligned
// records across a requested interval, or across the whole archive.
package decompress

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/biogo/referee/genome"
	"github.com/biogo/referee/header"
	"github.com/biogo/referee/reference"
	"github.com/biogo/referee/stream"
	"github.com/biogo/referee/xindex"
)

// suffixes enumerates the eight per-field container files alongside a
// base path P, matching the file names P.<suffix>.lz of the external
// interface.
const (
	suffixOffs       = "offs"
	suffixEdits      = "edits"
	suffixHasEdits   = "has_edits"
	suffixLeftClip   = "left_clip"
	suffixRightClip  = "right_clip"
	suffixFlags      = "flags"
	suffixIDs        = "ids"
	suffixMembership = "membership"
)

// Session holds every open resource for one archive: the header, the
// reference-base lookup collaborator, and the eight typed-stream buffers.
// A Session is not safe for concurrent use by multiple goroutines, matching
// §5's single-threaded-per-session contract; each Session owns its own
// file handles, closed by Close on every exit path.
type Session struct {
	hdr *header.Header
	ref reference.Source

	offs, edits, hasEdits  *stream.Buffer
	leftClip, rightClip    *stream.Buffer
	flags, ids, membership *stream.Buffer
}

// Open opens the archive rooted at basePath: the header (basePath+".head"),
// the sidecar index ("genomic_intervals.txt" alongside basePath), and the
// eight typed-stream container files (basePath+"."+suffix+".lz"). ref
// supplies reference bases for sequence reconstruction; it is the caller's
// collaborator, not opened by Session.
func Open(basePath string, ref reference.Source) (s *Session, err error) {
	hdrFile, err := os.Open(basePath + ".head")
	if err != nil {
		return nil, fmt.Errorf("decompress: %w: %v", ErrMissingComponent, err)
	}
	defer hdrFile.Close()

	hdr, err := header.Parse(hdrFile)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}

	sidecarPath := filepath.Join(filepath.Dir(basePath), "genomic_intervals.txt")
	sidecarFile, err := os.Open(sidecarPath)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w: %v", ErrMissingComponent, err)
	}
	defer sidecarFile.Close()

	tuples, err := xindex.ParseSidecar(sidecarFile)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}

	s = &Session{hdr: hdr, ref: ref}
	opened := make([]**stream.Buffer, 0, 8)
	defer func() {
		if err != nil {
			for _, b := range opened {
				if *b != nil {
					(*b).Close()
				}
			}
		}
	}()

	open := func(dst **stream.Buffer, suffix string) {
		if err != nil {
			return
		}
		var buf *stream.Buffer
		buf, err = stream.Open(basePath+"."+suffix+".lz", tuples[suffix])
		if err != nil {
			err = fmt.Errorf("decompress: %w: %s: %v", ErrMissingComponent, suffix, err)
			return
		}
		*dst = buf
		opened = append(opened, dst)
	}

	open(&s.offs, suffixOffs)
	open(&s.edits, suffixEdits)
	open(&s.hasEdits, suffixHasEdits)
	open(&s.leftClip, suffixLeftClip)
	open(&s.rightClip, suffixRightClip)
	open(&s.flags, suffixFlags)
	open(&s.ids, suffixIDs)
	open(&s.membership, suffixMembership)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Close releases every file handle the Session holds. s must not be used
// afterward.
func (s *Session) Close() error {
	var firstErr error
	for _, b := range []*stream.Buffer{s.offs, s.edits, s.hasEdits, s.leftClip, s.rightClip, s.flags, s.ids, s.membership} {
		if b == nil {
			continue
		}
		if err := b.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	*s = Session{}
	return firstErr
}

// Header returns the session's parsed archive header.
func (s *Session) Header() *header.Header { return s.hdr }

// Decompress emits every record in the archive, in chromosome then
// physical order, to sink.
func (s *Session) Decompress(ctx context.Context, sink RecordSink, opts Options) error {
	return s.drive(ctx, -1, 0, genome.ChromoMax, nil, nil, sink, opts)
}

// DecompressInterval emits exactly the records whose (chromosome, position)
// falls within interval (half-open at interval.End) to sink.
func (s *Session) DecompressInterval(ctx context.Context, interval genome.QueryInterval, sink RecordSink, opts Options) error {
	return s.drive(ctx, interval.Chromosome, interval.Start, interval.End, nil, &interval, sink, opts)
}

// DecompressFromAlignment emits records to sink starting with the
// (atNumAlignments+1)-th overall alignment record. This is an elaboration
// beyond the two entry points named in the external interface, exercising
// the at_num_alignments seek path (§4.D) at the session level: the chosen
// block is the last one whose NumAlignments is strictly less than
// atNumAlignments, its leading records before the requested one are decoded
// past without being emitted, and only that single block is decoded, so
// emission ends with the block's last record.
func (s *Session) DecompressFromAlignment(ctx context.Context, atNumAlignments uint64, sink RecordSink, opts Options) error {
	return s.drive(ctx, -1, 0, genome.ChromoMax, &atNumAlignments, nil, sink, opts)
}
