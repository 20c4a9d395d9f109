// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

import (
	"encoding/binary"
	"hash/crc32"
)

// Write serializes b to the binary index format described in format.go
// and returns the complete file content. The caller is responsible for
// writing the result to disk (and for invalidating any cached reader
// for the destination path, see InvalidateCache).
//
// Write runs in two passes: the first computes every section's size so
// offsets can be filled into the header before any section is written;
// the second emits the header, then each section body, then each
// section's trailing CRC32. Given the same sequence of AddFile calls,
// two Builders always produce byte-identical output, because the
// trigram table is emitted in the fixed ascending order of its keys.
func (b *Builder) Write() ([]byte, error) {
	sorted := b.sortedPostingLists()

	var pathBytesTotal int
	for _, f := range b.files {
		pathBytesTotal += len(f.path)
	}
	fileTableSize := len(b.files)*fileEntrySize + pathBytesTotal + crcSize

	trigramTableSize := len(sorted)*trigramEntrySize + crcSize

	serializedPostings := make([][]byte, len(sorted))
	var postingDataSize int
	for i, entry := range sorted {
		blob, err := entry.list.Serialize()
		if err != nil {
			return nil, &CorruptIndexError{Reason: "failed to serialize posting list: " + err.Error()}
		}
		serializedPostings[i] = blob
		postingDataSize += len(blob)
	}
	postingSectionSize := postingDataSize + crcSize

	fileTableOffset := uint64(headerSize)
	trigramTableOffset := fileTableOffset + uint64(fileTableSize)
	postingOffset := trigramTableOffset + uint64(trigramTableSize)
	totalSize := headerSize + fileTableSize + trigramTableSize + postingSectionSize

	out := make([]byte, 0, totalSize)

	header := &Header{
		Version:            IndexVersion,
		FileCount:          b.FileCount(),
		TrigramCount:       b.TrigramCount(),
		FileTableOffset:    fileTableOffset,
		TrigramTableOffset: trigramTableOffset,
		PostingOffset:      postingOffset,
	}
	headerBytes := header.toBytes()
	out = append(out, headerBytes[:]...)

	fileTableStart := len(out)
	pathOffset := uint32(len(b.files) * fileEntrySize)
	var allPaths []byte
	var entryBuf [fileEntrySize]byte
	for _, f := range b.files {
		if len(f.path) > 1<<16-1 {
			return nil, &pathTooLongError{path: f.path}
		}
		pathLen := uint16(len(f.path))
		binary.LittleEndian.PutUint32(entryBuf[0:4], f.fileID)
		binary.LittleEndian.PutUint32(entryBuf[4:8], pathOffset)
		binary.LittleEndian.PutUint16(entryBuf[8:10], pathLen)
		out = append(out, entryBuf[:]...)
		allPaths = append(allPaths, f.path...)
		pathOffset += uint32(pathLen)
	}
	out = append(out, allPaths...)
	fileTableCRC := crc32.ChecksumIEEE(out[fileTableStart:])
	out = appendUint32(out, fileTableCRC)

	trigramTableStart := len(out)
	var currentPostingOffset uint32
	var trigramBuf [trigramEntrySize]byte
	for i, entry := range sorted {
		copy(trigramBuf[0:3], entry.trigram[:])
		binary.LittleEndian.PutUint32(trigramBuf[3:7], currentPostingOffset)
		postingLen := uint32(len(serializedPostings[i]))
		binary.LittleEndian.PutUint32(trigramBuf[7:11], postingLen)
		out = append(out, trigramBuf[:]...)
		currentPostingOffset += postingLen
	}
	trigramTableCRC := crc32.ChecksumIEEE(out[trigramTableStart:])
	out = appendUint32(out, trigramTableCRC)

	postingStart := len(out)
	for _, blob := range serializedPostings {
		out = append(out, blob...)
	}
	postingCRC := crc32.ChecksumIEEE(out[postingStart:])
	out = appendUint32(out, postingCRC)

	return out, nil
}

func appendUint32(out []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(out, buf[:]...)
}
