package xindex

import "errors"

// ErrIndexMismatch is returned when a stream's container block count
// exceeds its sidecar tuple count, or a tuple cites a malformed
// coordinate pair.
var ErrIndexMismatch = errors.New("xindex: index mismatch")
