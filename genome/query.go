package genome

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseQueryInterval parses the chr<N>:<start>-<end> query syntax of §6.
// Unlike the original parseInputInterval, which sliced to idx+1..idx2-idx
// and relied on strconv.Atoi-equivalent parsing stopping at the first
// non-digit to mask the resulting off-by-one, this slices exactly to the
// separators.
func ParseQueryInterval(s string) (QueryInterval, error) {
	if !strings.HasPrefix(s, "chr") {
		return QueryInterval{}, fmt.Errorf("genome: invalid query interval %q: missing chr prefix", s)
	}
	rest := s[len("chr"):]

	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return QueryInterval{}, fmt.Errorf("genome: invalid query interval %q: missing ':'", s)
	}
	chromo, err := strconv.Atoi(rest[:colon])
	if err != nil {
		return QueryInterval{}, fmt.Errorf("genome: invalid query interval %q: bad chromosome: %v", s, err)
	}

	span := rest[colon+1:]
	dash := strings.IndexByte(span, '-')
	if dash < 0 {
		return QueryInterval{}, fmt.Errorf("genome: invalid query interval %q: missing '-'", s)
	}
	start, err := strconv.Atoi(span[:dash])
	if err != nil {
		return QueryInterval{}, fmt.Errorf("genome: invalid query interval %q: bad start: %v", s, err)
	}
	end, err := strconv.Atoi(span[dash+1:])
	if err != nil {
		return QueryInterval{}, fmt.Errorf("genome: invalid query interval %q: bad end: %v", s, err)
	}
	if chromo < 0 || start < 0 || end < start {
		return QueryInterval{}, fmt.Errorf("genome: invalid query interval %q: out of range", s)
	}

	return QueryInterval{Chromosome: chromo, Start: start, End: end}, nil
}
