// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decompress

import "errors"

// ErrMalformedEditScript is returned when an edit operation's position
// falls outside [0, read_len+inserts) for the read it applies to.
var ErrMalformedEditScript = errors.New("decompress: malformed edit script")

// ErrMissingComponent is returned when an archive component named in the
// external interface (the header, one of the eight typed-stream files, or
// the sidecar index) could not be opened alongside the others.
var ErrMissingComponent = errors.New("decompress: missing archive component")
