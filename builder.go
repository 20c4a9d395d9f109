// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// fileEntry is a registered file in a Builder, in insertion order.
type fileEntry struct {
	fileID uint32
	path   string
}

// Builder accumulates files and their trigrams in memory, then
// serializes to the binary index format with Write. A Builder is not
// safe for concurrent use.
type Builder struct {
	files       []fileEntry
	postingSets map[Trigram]*PostingList
	nextFileID  uint64 // widened so overflow past math.MaxUint32 is observable
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{postingSets: make(map[Trigram]*PostingList)}
}

// AddFile registers path with the given content. Binary content (by the
// null-byte-ratio rule) and content larger than MaxIndexedFileSize are
// silently dropped; no ID is assigned and the path does not appear in
// the index. Otherwise path is assigned the next sequential file ID,
// and trigrams are extracted from the raw content and, when content is
// valid UTF-8, from a lowercased copy as well: the posting lists for
// both sets gain the file's ID, which is what lets a single index serve
// both case-sensitive and case-insensitive queries.
//
// AddFile panics if more than math.MaxUint32 files have already been
// added; that many files in one index is not a condition this package
// expects to recover from.
func (b *Builder) AddFile(path string, content []byte) {
	if len(content) > MaxIndexedFileSize || isBinary(content) {
		return
	}

	if b.nextFileID > uint64(^uint32(0)) {
		panic("trgm: Builder: file_id overflow (exceeded 2^32 files)")
	}
	fileID := uint32(b.nextFileID)
	b.nextFileID++

	b.files = append(b.files, fileEntry{fileID: fileID, path: path})

	if len(content) < 3 {
		return
	}

	for t := range extractTrigrams(content) {
		b.insert(t, fileID)
	}

	if utf8.Valid(content) {
		lower := strings.ToLower(string(content))
		for t := range extractTrigrams([]byte(lower)) {
			b.insert(t, fileID)
		}
	}
}

func (b *Builder) insert(t Trigram, fileID uint32) {
	pl, ok := b.postingSets[t]
	if !ok {
		pl = NewPostingList()
		b.postingSets[t] = pl
	}
	pl.Insert(fileID)
}

// FileCount returns the number of files registered so far.
func (b *Builder) FileCount() uint32 { return uint32(len(b.files)) }

// TrigramCount returns the number of distinct trigrams registered so
// far.
func (b *Builder) TrigramCount() uint32 { return uint32(len(b.postingSets)) }

// sortedPosting pairs a trigram with its posting list, used internally
// by sortedPostingLists to keep the trigram alongside its list once
// sorted.
type sortedPosting struct {
	trigram Trigram
	list    *PostingList
}

// sortedPostingLists returns every (trigram, posting list) pair in
// ascending trigram order, the order Write requires for the on-disk
// trigram table.
func (b *Builder) sortedPostingLists() []sortedPosting {
	entries := make([]sortedPosting, 0, len(b.postingSets))
	for t, pl := range b.postingSets {
		entries = append(entries, sortedPosting{trigram: t, list: pl})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].trigram.Less(entries[j].trigram)
	})
	return entries
}

// pathTooLongError reports that a registered path is longer than a
// uint16 can address in the file table.
type pathTooLongError struct {
	path string
}

func (e *pathTooLongError) Error() string {
	shown := e.path
	if len(shown) > 80 {
		shown = shown[:80]
	}
	return fmt.Sprintf("file path too long (%d bytes, max 65535): %s", len(e.path), shown)
}
