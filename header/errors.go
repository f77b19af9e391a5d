package header

import "errors"

// ErrMalformedHeader is returned when a required section of the .head
// sidecar is missing or malformed.
var ErrMalformedHeader = errors.New("header: malformed header")
