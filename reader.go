// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

import (
	"encoding/binary"
	"os"
	"unicode/utf8"
)

// Reader is a validated, memory-mapped view of an index file. Once
// opened, a Reader is read-only and safe to share across goroutines
// without synchronization; there is no mutable state to protect.
type Reader struct {
	data   []byte
	header Header
}

// Open validates and memory-maps the index file at path. Any structural
// problem (truncation, bad magic, a version this package doesn't
// understand, an out-of-order or out-of-bounds section offset, or a
// CRC32 mismatch in any of the four checksummed regions) is reported
// here, at open time; once a Reader exists, queries against it cannot
// fail with a format error.
func Open(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, newError(KindNotFound, "open", path, ErrIndexNotFound)
		}
		return nil, newError(KindIO, "open", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, newError(KindIO, "open", path, err)
	}
	defer f.Close()

	mm, err := mmapFile(f)
	if err != nil {
		return nil, newError(KindIO, "open", path, err)
	}
	data := mm.data

	header, err := headerFromBytes(data)
	if err != nil {
		return nil, newError(KindFormat, "open", path, err)
	}
	if header.Version != IndexVersion {
		return nil, newError(KindFormat, "open", path, &VersionMismatchError{
			Expected: IndexVersion, Found: header.Version,
		})
	}

	fileLen := uint64(len(data))
	if header.FileTableOffset != headerSize ||
		header.FileTableOffset > header.TrigramTableOffset ||
		header.TrigramTableOffset > header.PostingOffset ||
		header.PostingOffset > fileLen {
		return nil, newError(KindFormat, "open", path, &CorruptIndexError{
			Reason: "section offsets out of order or out of bounds",
		})
	}

	ftStart := int(header.FileTableOffset)
	ttStart := int(header.TrigramTableOffset)
	psStart := int(header.PostingOffset)
	end := len(data)

	if err := verifySectionCRC(data, ftStart, ttStart, "file table"); err != nil {
		return nil, newError(KindFormat, "open", path, err)
	}
	if err := verifySectionCRC(data, ttStart, psStart, "trigram table"); err != nil {
		return nil, newError(KindFormat, "open", path, err)
	}
	if err := verifySectionCRC(data, psStart, end, "posting section"); err != nil {
		return nil, newError(KindFormat, "open", path, err)
	}

	return &Reader{data: data, header: *header}, nil
}

// FileCount returns the number of files registered in the index.
func (r *Reader) FileCount() uint32 { return r.header.FileCount }

// TrigramCount returns the number of distinct trigrams in the index.
func (r *Reader) TrigramCount() uint32 { return r.header.TrigramCount }

// Size returns the total size in bytes of the mapped index file.
func (r *Reader) Size() int { return len(r.data) }

// PathOf returns the path registered for fileID, or "", false if fileID
// is out of range, the file table entry is out of bounds, or the path
// bytes are not valid UTF-8.
func (r *Reader) PathOf(fileID uint32) (string, bool) {
	if fileID >= r.header.FileCount {
		return "", false
	}
	ftOffset := int(r.header.FileTableOffset)
	entryOffset := ftOffset + int(fileID)*fileEntrySize
	if entryOffset+fileEntrySize > len(r.data) {
		return "", false
	}
	entry := r.data[entryOffset:]
	pathOffset := binary.LittleEndian.Uint32(entry[4:8])
	pathLen := binary.LittleEndian.Uint16(entry[8:10])

	absOffset := ftOffset + int(pathOffset)
	if absOffset < 0 || absOffset+int(pathLen) > len(r.data) {
		return "", false
	}
	pathBytes := r.data[absOffset : absOffset+int(pathLen)]
	if !utf8.Valid(pathBytes) {
		return "", false
	}
	return string(pathBytes), true
}

// PostingsOf returns the posting list stored for trigram, or nil, false
// if the trigram table has no entry for it. Lookup is a binary search
// over the sorted trigram table, per the format's precondition that
// entries are sorted ascending by the 3-byte key.
func (r *Reader) PostingsOf(t Trigram) (*PostingList, bool) {
	ttOffset := int(r.header.TrigramTableOffset)
	count := int(r.header.TrigramCount)
	postingBase := int(r.header.PostingOffset)

	lo, hi := 0, count
	for lo < hi {
		mid := lo + (hi-lo)/2
		entryOffset := ttOffset + mid*trigramEntrySize
		if entryOffset+trigramEntrySize > len(r.data) {
			return nil, false
		}
		entry := r.data[entryOffset:]
		entryTrigram := Trigram{entry[0], entry[1], entry[2]}

		switch {
		case entryTrigram == t:
			postingOffset := binary.LittleEndian.Uint32(entry[3:7])
			postingLen := binary.LittleEndian.Uint32(entry[7:11])
			absOffset := postingBase + int(postingOffset)
			if absOffset < 0 || absOffset+int(postingLen) > len(r.data) {
				return nil, false
			}
			pl, err := DeserializePostingList(r.data[absOffset : absOffset+int(postingLen)])
			if err != nil {
				return nil, false
			}
			return pl, true
		case entryTrigram.Less(t):
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return nil, false
}
