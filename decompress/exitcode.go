package decompress

import (
	"errors"
	"os"

	"github.com/biogo/referee/block"
	"github.com/biogo/referee/header"
	"github.com/biogo/referee/stream"
	"github.com/biogo/referee/xindex"
)

// Exit codes for an eventual CLI built on this package. The core itself
// never calls os.Exit; ExitCode is the single place a process exit status
// is derived from a returned error.
const (
	ExitSuccess           = 0
	ExitMalformedInput    = 2
	ExitMissingComponent  = 3
	ExitIOError           = 4
	ExitInvariantViolated = 5
)

// ExitCode maps an error returned by Decompress or DecompressInterval to
// one of the exit codes above. A nil error maps to ExitSuccess.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, header.ErrMalformedHeader),
		errors.Is(err, ErrMalformedEditScript),
		errors.Is(err, xindex.ErrIndexMismatch),
		errors.Is(err, stream.ErrNoSuchAlignmentPoint):
		return ExitMalformedInput
	case errors.Is(err, ErrMissingComponent),
		errors.Is(err, os.ErrNotExist):
		return ExitMissingComponent
	case errors.Is(err, block.ErrCorruptContainer),
		errors.Is(err, block.ErrDecode):
		return ExitIOError
	case errors.Is(err, stream.ErrUnexpectedEndOfStream):
		return ExitInvariantViolated
	default:
		return ExitInvariantViolated
	}
}
