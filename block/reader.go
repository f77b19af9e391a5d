// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package block implements the framed compressed container format: scanning
// a container's member trailers to enumerate its blocks (the Block Container
// Reader), and decompressing a single member's payload (the Block Decoder).
package block

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/mmap"
)

// trailerSize is the on-disk size of one member's trailer: an 8 byte
// decompressed size, an 8 byte compressed payload size, and a 4 byte CRC32
// of the compressed payload. There is no separate member header; a member
// on disk is payload||trailer, matching the "self-delimiting members"
// requirement with the minimum necessary framing.
const trailerSize = 20

// Member describes one container member as recorded by its trailer.
type Member struct {
	// Offset is the file offset of the first byte of the member's
	// compressed payload.
	Offset int64
	// Size is the total on-disk size of the member, payload plus trailer.
	Size int64
	// DecompressedSize is the size of the member once decompressed.
	DecompressedSize int64
	// CRC32 is the CRC32 of the compressed payload, as recorded in the
	// trailer.
	CRC32 uint32
}

// PayloadSize returns the on-disk size of m's compressed payload, excluding
// its trailer.
func (m Member) PayloadSize() int64 { return m.Size - trailerSize }

// Reader scans a container file for its member trailers and serves each
// member's compressed payload by random access.
type Reader struct {
	f    *mmap.ReaderAt
	size int64
}

// Open opens the container at path for random access.
func Open(path string) (*Reader, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("block: open %s: %w", path, err)
	}
	return &Reader{f: f, size: int64(f.Len())}, nil
}

// Close releases the underlying file handle. r must not be used afterward.
func (r *Reader) Close() error {
	err := r.f.Close()
	*r = Reader{}
	return err
}

// Members scans the container from end-of-file backward and returns its
// members in forward (on-disk) order.
//
// It positions at end-of-file, repeatedly steps back by trailerSize, reads
// the trailer, derives the member's total size, steps back the remainder of
// the member to land at its start, and records the member. It fails with
// ErrCorruptContainer if the running total of member sizes does not exactly
// equal the file length, or if any trailer reports an implausible size.
func (r *Reader) Members() ([]Member, error) {
	var (
		members []Member
		cursor  = r.size
		total   int64
	)
	var trailer [trailerSize]byte
	for cursor > 0 {
		if cursor < trailerSize {
			return nil, fmt.Errorf("block: %w: trailer truncated at offset %d", ErrCorruptContainer, cursor)
		}
		trailerOff := cursor - trailerSize
		if _, err := r.f.ReadAt(trailer[:], trailerOff); err != nil {
			return nil, fmt.Errorf("block: read trailer at %d: %w", trailerOff, err)
		}
		decompressedSize := int64(binary.LittleEndian.Uint64(trailer[0:8]))
		payloadSize := int64(binary.LittleEndian.Uint64(trailer[8:16]))
		crc := binary.LittleEndian.Uint32(trailer[16:20])

		if payloadSize < 0 || decompressedSize < 0 {
			return nil, fmt.Errorf("block: %w: negative size in trailer at offset %d", ErrCorruptContainer, trailerOff)
		}
		memberSize := payloadSize + trailerSize
		if memberSize > cursor {
			return nil, fmt.Errorf("block: %w: implausible member size %d at offset %d", ErrCorruptContainer, memberSize, trailerOff)
		}

		memberOffset := cursor - memberSize
		members = append(members, Member{
			Offset:           memberOffset,
			Size:             memberSize,
			DecompressedSize: decompressedSize,
			CRC32:            crc,
		})

		total += memberSize
		cursor = memberOffset
	}

	if total != r.size {
		return nil, fmt.Errorf("block: %w: members sum to %d, file length is %d", ErrCorruptContainer, total, r.size)
	}

	// members were appended in reverse (end-of-file backward); reverse
	// them so index i is the i-th logical region.
	for i, j := 0, len(members)-1; i < j; i, j = i+1, j-1 {
		members[i], members[j] = members[j], members[i]
	}
	return members, nil
}

// Payload reads m's compressed payload bytes.
func (r *Reader) Payload(m Member) ([]byte, error) {
	buf := make([]byte, m.PayloadSize())
	if _, err := r.f.ReadAt(buf, m.Offset); err != nil {
		return nil, fmt.Errorf("block: read payload at %d: %w", m.Offset, err)
	}
	return buf, nil
}
