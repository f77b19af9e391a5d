// Copyright ©2013 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reference

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

// ErrNoSuchChromosome is returned by FASTAIndex when asked for a
// chromosome index with no corresponding FASTA record.
var ErrNoSuchChromosome = errors.New("reference: no such chromosome")

// record is a single indexed FASTA sequence. Instead of being keyed by
// name for direct lookup, records here are addressed by chromosome id
// (matching the header's transcript table), since that is the coordinate
// space the rest of this module uses.
type record struct {
	length       int
	start        int64 // seek offset of the sequence's first base
	basesPerLine int
	bytesPerLine int
}

func (r record) position(p int) int64 {
	return r.start + int64(p/r.basesPerLine*r.bytesPerLine+p%r.basesPerLine)
}

func (r record) endOfLineOffset(p int) int {
	if p/r.basesPerLine == r.length/r.basesPerLine {
		return r.length - p
	}
	return r.basesPerLine - p%r.basesPerLine
}

// FASTAIndex implements Source over an mmapped FASTA file, indexed by
// chromosome id rather than by sequence name. It is built by scanning the
// FASTA once (as fai.NewIndex does) and resolving each '>' record's name
// against the caller-supplied chromosome table.
type FASTAIndex struct {
	f       *mmap.ReaderAt
	records []record // indexed by chromosome id
}

// OpenFASTAIndex mmaps the FASTA at path and builds a chromosome-indexed
// table by scanning it, matching each sequence's name against names
// (chromosome id -> name, as produced by header.Header.Transcripts).
func OpenFASTAIndex(path string, names []string) (*FASTAIndex, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reference: open %s: %w", path, err)
	}

	byName, err := scanFASTA(io.NewSectionReader(f, 0, int64(f.Len())))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reference: %w", err)
	}

	records := make([]record, len(names))
	for i, name := range names {
		rec, ok := byName[name]
		if !ok {
			f.Close()
			return nil, fmt.Errorf("reference: %w: %s", ErrNoSuchChromosome, name)
		}
		records[i] = rec
	}

	return &FASTAIndex{f: f, records: records}, nil
}

// Close releases the underlying mmapped file. idx must not be used
// afterward.
func (idx *FASTAIndex) Close() error {
	err := idx.f.Close()
	*idx = FASTAIndex{}
	return err
}

// Base implements Source.
func (idx *FASTAIndex) Base(chromosome, offset int) (byte, error) {
	b, err := idx.Window(chromosome, offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Window implements Source.
func (idx *FASTAIndex) Window(chromosome, offset, length int) ([]byte, error) {
	if chromosome < 0 || chromosome >= len(idx.records) {
		return nil, fmt.Errorf("reference: %w: chromosome %d", ErrNoSuchChromosome, chromosome)
	}
	rec := idx.records[chromosome]
	if offset < 0 || rec.length < offset+length {
		return nil, fmt.Errorf("reference: offset %d+%d out of range for chromosome %d (length %d)", offset, length, chromosome, rec.length)
	}

	out := make([]byte, 0, length)
	cur := offset
	for len(out) < length {
		p := rec.position(cur)
		eol := rec.endOfLineOffset(cur)
		want := length - len(out)
		if eol < want {
			want = eol
		}
		buf := make([]byte, want)
		n, err := idx.f.ReadAt(buf, p)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reference: read at %d: %w", p, err)
		}
		out = append(out, buf[:n]...)
		cur += n
	}
	return out, nil
}

// scanFASTA reads a FASTA file and returns its records keyed by sequence
// name, adapted from fai.NewIndex.
func scanFASTA(r io.Reader) (map[string]record, error) {
	sc := bufio.NewScanner(r)
	sc.Split(func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			return i + 1, data[:i+1], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	})

	out := make(map[string]record)
	var (
		name         string
		rec          record
		offset       int64
		wantDescLine bool
	)
	seal := func() {
		if name != "" {
			out[name] = rec
		}
	}
	for sc.Scan() {
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		if b[0] == '>' {
			seal()
			name = string(bytes.SplitN(b[1:], []byte{' '}, 2)[0])
			if _, exists := out[name]; exists {
				return nil, fmt.Errorf("duplicate sequence identifier %s at %d", name, offset)
			}
			rec = record{start: offset + int64(len(sc.Bytes()))}
			wantDescLine = false
		} else {
			if wantDescLine {
				return nil, fmt.Errorf("unexpected short line before offset %d", offset)
			}
			switch {
			case rec.bytesPerLine == 0:
				rec.bytesPerLine = len(sc.Bytes())
			case len(sc.Bytes()) > rec.bytesPerLine:
				return nil, fmt.Errorf("unexpected long line at offset %d", offset)
			case len(sc.Bytes()) < rec.bytesPerLine:
				wantDescLine = true
			}
			switch {
			case len(b) == 0:
			case rec.basesPerLine == 0:
				rec.basesPerLine = len(b)
			case len(b) > rec.basesPerLine:
				return nil, fmt.Errorf("unexpected long line at offset %d", offset)
			case len(b) < rec.basesPerLine:
				wantDescLine = true
			}
			rec.length += len(b)
		}
		offset += int64(len(sc.Bytes()))
	}
	seal()
	return out, sc.Err()
}
