package xindex

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/referee/genome"
)

// ParseSidecar parses the genomic_intervals.txt sidecar: one line per
// tuple, `<suffix> <num_alignments> <start_chr>:<start_off>-<end_chr>:<end_off> <is_aligned>`,
// ordered by physical block order within each suffix. It returns the
// tuples partitioned by stream suffix, preserving within-suffix order.
func ParseSidecar(r io.Reader) (map[string][]genome.Interval, error) {
	tuples := make(map[string][]genome.Interval)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 4 {
			return nil, fmt.Errorf("xindex: %w: line %d: expected 4 fields, got %d", ErrIndexMismatch, line, len(fields))
		}
		suffix := fields[0]

		numAlignments, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("xindex: %w: line %d: bad num_alignments: %v", ErrIndexMismatch, line, err)
		}

		start, end, err := parseCoordPair(fields[2])
		if err != nil {
			return nil, fmt.Errorf("xindex: %w: line %d: %v", ErrIndexMismatch, line, err)
		}

		isAligned, err := strconv.ParseBool(fields[3])
		if err != nil {
			return nil, fmt.Errorf("xindex: %w: line %d: bad is_aligned: %v", ErrIndexMismatch, line, err)
		}

		tuples[suffix] = append(tuples[suffix], genome.Interval{
			Start:         start,
			End:           end,
			NumAlignments: numAlignments,
			IsAligned:     isAligned,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("xindex: %w", err)
	}
	return tuples, nil
}

// parseCoordPair parses "<start_chr>:<start_off>-<end_chr>:<end_off>".
func parseCoordPair(s string) (start, end genome.Coord, err error) {
	dash := strings.IndexByte(s, '-')
	if dash < 0 {
		return start, end, fmt.Errorf("missing '-' in coordinate pair %q", s)
	}
	start, err = parseCoord(s[:dash])
	if err != nil {
		return start, end, err
	}
	end, err = parseCoord(s[dash+1:])
	if err != nil {
		return start, end, err
	}
	return start, end, nil
}

func parseCoord(s string) (genome.Coord, error) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return genome.Coord{}, fmt.Errorf("missing ':' in coordinate %q", s)
	}
	chromo, err := strconv.Atoi(s[:colon])
	if err != nil {
		return genome.Coord{}, fmt.Errorf("bad chromosome in %q: %v", s, err)
	}
	offset, err := strconv.Atoi(s[colon+1:])
	if err != nil {
		return genome.Coord{}, fmt.Errorf("bad offset in %q: %v", s, err)
	}
	return genome.Coord{Chromosome: chromo, Offset: offset}, nil
}
