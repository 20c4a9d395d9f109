// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nexi-lab/trgm/walk"
)

// Entry is a single (path, content) pair, the unit BuildIndexFromEntries
// registers with a Builder. It lets a caller build an index from content
// that doesn't live on the local filesystem (already-read blobs from a
// content-addressed store, for instance) without going through Walk.
type Entry struct {
	Path    string
	Content []byte
}

// BuildIndexFromPaths walks each of roots with a gitignore-aware
// walker that skips ".git" and "node_modules" unconditionally, skips
// anything a .gitignore excludes, and does not follow symlinks. Every
// regular file it finds is registered with a fresh Builder, and the
// resulting index is atomically written to indexPath.
//
// The write is atomic: the serialized index is written to a temporary
// file in the same directory as indexPath and renamed into place, so a
// reader opening indexPath never observes a partially written file. Any
// Reader previously cached for indexPath is invalidated so that the next
// lookup picks up the new content.
func BuildIndexFromPaths(indexPath string, roots []string) (*IndexStatsResult, error) {
	b := NewBuilder()
	w, err := walk.NewGitignoreWalker()
	if err != nil {
		return nil, newError(KindIO, "build_index_from_paths", indexPath, err)
	}

	for _, root := range roots {
		err := w.Walk(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return nil
			}
			b.AddFile(path, content)
			return nil
		})
		if err != nil {
			return nil, newError(KindIO, "build_index_from_paths", root, err)
		}
	}

	return writeIndex(b, indexPath)
}

// BuildIndexFromEntries builds an index directly from an in-memory list
// of (path, content) pairs, without touching the filesystem for
// anything but the final write. This is the entry point for callers
// that already have file content in hand, for example content pulled
// from a content-addressed store rather than read from disk.
func BuildIndexFromEntries(indexPath string, entries []Entry) (*IndexStatsResult, error) {
	b := NewBuilder()
	for _, e := range entries {
		b.AddFile(e.Path, e.Content)
	}
	return writeIndex(b, indexPath)
}

// writeIndex serializes b and atomically installs it at indexPath,
// invalidating any cached Reader for that path.
func writeIndex(b *Builder, indexPath string) (*IndexStatsResult, error) {
	data, err := b.Write()
	if err != nil {
		return nil, newError(KindIO, "build_index", indexPath, err)
	}

	dir := filepath.Dir(indexPath)
	tmp, err := os.CreateTemp(dir, ".trgm-index-*.tmp")
	if err != nil {
		return nil, newError(KindIO, "build_index", indexPath, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, newError(KindIO, "build_index", indexPath, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, newError(KindIO, "build_index", indexPath, err)
	}
	if err := os.Rename(tmpPath, indexPath); err != nil {
		return nil, newError(KindIO, "build_index", indexPath, err)
	}

	InvalidateCache(indexPath)

	return &IndexStatsResult{
		FileCount:      b.FileCount(),
		TrigramCount:   b.TrigramCount(),
		IndexSizeBytes: int64(len(data)),
	}, nil
}

// SearchCandidates opens (or reuses the cached handle for) the index at
// indexPath and returns the candidate file paths pattern's compiled
// query selects, without verifying them against real file content. The
// result is an over-approximation: every true match is included, but
// some returned paths may not actually contain a match.
func SearchCandidates(indexPath, pattern string, ignoreCase bool) ([]string, error) {
	r, err := getCachedReader(indexPath)
	if err != nil {
		return nil, err
	}
	return r.searchCandidates(pattern, ignoreCase), nil
}

// GrepWithIndex opens (or reuses the cached handle for) the index at
// indexPath, narrows the search with it, then verifies each candidate
// against its real file content on disk and returns up to maxResults
// matches. See Reader.grep for the verification contract.
func GrepWithIndex(indexPath, pattern string, ignoreCase bool, maxResults int) ([]Match, error) {
	r, err := getCachedReader(indexPath)
	if err != nil {
		return nil, err
	}
	return r.grep(pattern, ignoreCase, maxResults)
}

// IndexStatsResult reports the size of an index, as returned by
// BuildIndexFromPaths, BuildIndexFromEntries, and IndexStats.
type IndexStatsResult struct {
	FileCount      uint32
	TrigramCount   uint32
	IndexSizeBytes int64
}

// IndexStats opens (or reuses the cached handle for) the index at
// indexPath and reports its file count, trigram count, and on-disk
// size, without reading any of the indexed files themselves.
func IndexStats(indexPath string) (*IndexStatsResult, error) {
	r, err := getCachedReader(indexPath)
	if err != nil {
		return nil, err
	}
	return &IndexStatsResult{
		FileCount:      r.FileCount(),
		TrigramCount:   r.TrigramCount(),
		IndexSizeBytes: int64(r.Size()),
	}, nil
}
