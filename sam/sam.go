// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sam implements the SAM alignment record and its supporting types
// (CIGAR, flags, reference, optional fields), used here as the textual
// output format for reconstructed alignments. The SAM format is described
// in the SAM specification.
//
// http://samtools.github.io/hts-specs/SAMv1.pdf
package sam

const wordBits = 31

func validLen(i int) bool      { return 1 <= i && i <= 1<<wordBits-1 }
func validPos(i int) bool      { return -1 <= i && i <= (1<<wordBits-1)-1 } // 0-based.
func validTmpltLen(i int) bool { return -(1 << wordBits) <= i && i <= 1<<wordBits-1 }
