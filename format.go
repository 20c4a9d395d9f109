// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

// Binary index format.
//
// An index stored on disk has the format:
//
//	header (48 bytes)
//	file table section
//	trigram table section
//	posting section
//
// The header is:
//
//	magic [4]byte = "TRGM"
//	version uint32
//	flags uint32
//	file_count uint32
//	trigram_count uint32
//	file_table_offset uint64
//	trigram_table_offset uint64
//	posting_offset uint64
//	header_crc32 uint32 (over the first 44 bytes)
//
// All integers are little-endian. The file table section starting at
// file_table_offset (always 48, immediately after the header) holds
// file_count entries of 10 bytes each:
//
//	file_id uint32
//	path_offset uint32 (relative to the start of the file table section)
//	path_len uint16
//
// followed by the concatenation of path byte strings in entry order,
// followed by a uint32 CRC32 over everything in the section so far.
//
// The trigram table section starting at trigram_table_offset holds
// trigram_count entries, sorted ascending by the 3-byte key, of 11
// bytes each:
//
//	trigram [3]byte
//	posting_offset uint32 (relative to the start of the posting section)
//	posting_len uint32
//
// followed by a uint32 CRC32 over the entries.
//
// The posting section starting at posting_offset holds the
// concatenation of serialized posting list blobs in trigram-table
// order, followed by a uint32 CRC32 over the blobs.

import (
	"encoding/binary"
	"hash/crc32"
)

const (
	headerSize       = 48
	fileEntrySize    = 4 + 4 + 2 // file_id + path_offset + path_len
	trigramEntrySize = 3 + 4 + 4 // trigram + posting_offset + posting_len
	crcSize          = 4
)

// Header is the parsed form of an index file's 48-byte header.
type Header struct {
	Version            uint32
	Flags              uint32
	FileCount          uint32
	TrigramCount       uint32
	FileTableOffset    uint64
	TrigramTableOffset uint64
	PostingOffset      uint64
}

// toBytes serializes h to the 48-byte on-disk header form, including the
// trailing CRC32 computed over the first 44 bytes.
func (h *Header) toBytes() [headerSize]byte {
	var buf [headerSize]byte
	copy(buf[0:4], IndexMagic)
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], h.Flags)
	binary.LittleEndian.PutUint32(buf[12:16], h.FileCount)
	binary.LittleEndian.PutUint32(buf[16:20], h.TrigramCount)
	binary.LittleEndian.PutUint64(buf[20:28], h.FileTableOffset)
	binary.LittleEndian.PutUint64(buf[28:36], h.TrigramTableOffset)
	binary.LittleEndian.PutUint64(buf[36:44], h.PostingOffset)
	crc := crc32.ChecksumIEEE(buf[:44])
	binary.LittleEndian.PutUint32(buf[44:48], crc)
	return buf
}

// headerFromBytes parses a Header from data, validating the magic and
// the header CRC32. It does not check the version or section offsets;
// callers validate those separately so that the caller controls which
// error kind is reported for which failure.
func headerFromBytes(data []byte) (*Header, error) {
	if len(data) < headerSize {
		return nil, &CorruptIndexError{Reason: "file too small for header"}
	}
	if string(data[0:4]) != IndexMagic {
		return nil, ErrInvalidMagic
	}
	storedCRC := binary.LittleEndian.Uint32(data[44:48])
	computedCRC := crc32.ChecksumIEEE(data[:44])
	if storedCRC != computedCRC {
		return nil, &CorruptIndexError{Reason: "header CRC mismatch"}
	}
	return &Header{
		Version:            binary.LittleEndian.Uint32(data[4:8]),
		Flags:              binary.LittleEndian.Uint32(data[8:12]),
		FileCount:          binary.LittleEndian.Uint32(data[12:16]),
		TrigramCount:       binary.LittleEndian.Uint32(data[16:20]),
		FileTableOffset:    binary.LittleEndian.Uint64(data[20:28]),
		TrigramTableOffset: binary.LittleEndian.Uint64(data[28:36]),
		PostingOffset:      binary.LittleEndian.Uint64(data[36:44]),
	}, nil
}

// verifySectionCRC checks the trailing CRC32 of the half-open byte range
// [start, end) in data, where the last 4 bytes of the range are the
// stored checksum over the bytes preceding them.
func verifySectionCRC(data []byte, start, end int, name string) error {
	if end < start+crcSize || end > len(data) {
		return &CorruptIndexError{Reason: name + " section too small for CRC"}
	}
	crcStart := end - crcSize
	storedCRC := binary.LittleEndian.Uint32(data[crcStart:end])
	computedCRC := crc32.ChecksumIEEE(data[start:crcStart])
	if storedCRC != computedCRC {
		return &CorruptIndexError{Reason: name + " CRC mismatch"}
	}
	return nil
}
