// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import "errors"

// ErrCorruptContainer is returned when a container's member trailers do not
// sum to the file length, or a trailer reports an implausible size.
var ErrCorruptContainer = errors.New("block: corrupt container")

// ErrDecode is returned when a member fails to decompress to exactly its
// recorded decompressed size.
var ErrDecode = errors.New("block: decode error")
