// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package header parses the archive's sidecar header: the transcript
// (chromosome) table, read length, and the three bijective small-integer
// remappings for flags, MAPQ and RNEXT.
package header

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Transcript is one reference sequence named in the header's @SQ table.
type Transcript struct {
	Name   string
	Length int
}

// Header holds a parsed .head sidecar: the transcript table, read length,
// and the flag/MAPQ/RNEXT bijections, each a map from the archive's
// on-disk small integer to its user-facing value (and back).
type Header struct {
	transcripts []Transcript
	readLen     int

	flag, flagRev   map[int]int
	mapq, mapqRev   map[int]int
	rnext, rnextRev map[int]int
}

// Transcripts returns the header's transcript table, indexed by
// chromosome id.
func (h *Header) Transcripts() []Transcript { return h.transcripts }

// ReadLen returns the archive's fixed read length.
func (h *Header) ReadLen() int { return h.readLen }

// Flag returns the user-facing flag value for the on-disk index, and
// whether it exists.
func (h *Header) Flag(onDisk int) (int, bool) { v, ok := h.flag[onDisk]; return v, ok }

// FlagIndex returns the on-disk index for the user-facing flag value, and
// whether it exists. The inverse of Flag.
func (h *Header) FlagIndex(userFacing int) (int, bool) { v, ok := h.flagRev[userFacing]; return v, ok }

// MAPQ returns the user-facing MAPQ value for the on-disk index, and
// whether it exists.
func (h *Header) MAPQ(onDisk int) (int, bool) { v, ok := h.mapq[onDisk]; return v, ok }

// MAPQIndex returns the on-disk index for the user-facing MAPQ value, and
// whether it exists. The inverse of MAPQ.
func (h *Header) MAPQIndex(userFacing int) (int, bool) { v, ok := h.mapqRev[userFacing]; return v, ok }

// RNext returns the user-facing RNEXT value for the on-disk index, and
// whether it exists.
func (h *Header) RNext(onDisk int) (int, bool) { v, ok := h.rnext[onDisk]; return v, ok }

// RNextIndex returns the on-disk index for the user-facing RNEXT value,
// and whether it exists. The inverse of RNext.
func (h *Header) RNextIndex(userFacing int) (int, bool) { v, ok := h.rnextRev[userFacing]; return v, ok }

// Parse reads a .head sidecar:
//
//	@RL <read_len>
//	@SQ <index> <name> <length>          (repeated, index order == transcript id)
//	@FM <on-disk-int> <user-facing-int>  (repeated)
//	@MQ <on-disk-int> <user-facing-int>  (repeated)
//	@RN <on-disk-int> <user-facing-int>  (repeated)
//
// It fails with ErrMalformedHeader if the @RL line, or any @SQ line, is
// missing.
func Parse(r io.Reader) (*Header, error) {
	h := &Header{
		flag: map[int]int{}, flagRev: map[int]int{},
		mapq: map[int]int{}, mapqRev: map[int]int{},
		rnext: map[int]int{}, rnextRev: map[int]int{},
	}

	var sawReadLen bool
	sq := map[int]Transcript{}
	var maxSQ = -1

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		switch fields[0] {
		case "@RL":
			if len(fields) != 2 {
				return nil, fmt.Errorf("header: %w: line %d: malformed @RL", ErrMalformedHeader, line)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("header: %w: line %d: %v", ErrMalformedHeader, line, err)
			}
			h.readLen = n
			sawReadLen = true
		case "@SQ":
			if len(fields) != 4 {
				return nil, fmt.Errorf("header: %w: line %d: malformed @SQ", ErrMalformedHeader, line)
			}
			idx, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("header: %w: line %d: %v", ErrMalformedHeader, line, err)
			}
			length, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, fmt.Errorf("header: %w: line %d: %v", ErrMalformedHeader, line, err)
			}
			sq[idx] = Transcript{Name: fields[2], Length: length}
			if idx > maxSQ {
				maxSQ = idx
			}
		case "@FM", "@MQ", "@RN":
			if len(fields) != 3 {
				return nil, fmt.Errorf("header: %w: line %d: malformed %s", ErrMalformedHeader, line, fields[0])
			}
			onDisk, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("header: %w: line %d: %v", ErrMalformedHeader, line, err)
			}
			userFacing, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("header: %w: line %d: %v", ErrMalformedHeader, line, err)
			}
			switch fields[0] {
			case "@FM":
				h.flag[onDisk] = userFacing
				h.flagRev[userFacing] = onDisk
			case "@MQ":
				h.mapq[onDisk] = userFacing
				h.mapqRev[userFacing] = onDisk
			case "@RN":
				h.rnext[onDisk] = userFacing
				h.rnextRev[userFacing] = onDisk
			}
		default:
			return nil, fmt.Errorf("header: %w: line %d: unknown tag %q", ErrMalformedHeader, line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if !sawReadLen {
		return nil, fmt.Errorf("header: %w: missing @RL", ErrMalformedHeader)
	}
	if maxSQ < 0 {
		return nil, fmt.Errorf("header: %w: missing @SQ", ErrMalformedHeader)
	}

	h.transcripts = make([]Transcript, maxSQ+1)
	for idx, t := range sq {
		h.transcripts[idx] = t
	}

	return h, nil
}
