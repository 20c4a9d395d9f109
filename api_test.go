// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildIndexFromEntriesAndGrep(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "idx")

	entries := []Entry{
		{Path: filepath.Join(dir, "hello.txt"), Content: []byte("hello there")},
		{Path: filepath.Join(dir, "world.txt"), Content: []byte("a whole world away")},
	}
	stats, err := BuildIndexFromEntries(indexPath, entries)
	if err != nil {
		t.Fatalf("BuildIndexFromEntries: %v", err)
	}
	if stats.FileCount != 2 {
		t.Errorf("FileCount = %d, want 2", stats.FileCount)
	}

	// GrepWithIndex verifies against real file content, so the entries'
	// paths must exist on disk for this part of the round trip.
	if err := os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello there"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	matches, err := GrepWithIndex(indexPath, "hello", false, 10)
	if err != nil {
		t.Fatalf("GrepWithIndex: %v", err)
	}
	if len(matches) != 1 || matches[0].File != filepath.Join(dir, "hello.txt") {
		t.Errorf("GrepWithIndex(hello) = %+v, want 1 match in hello.txt", matches)
	}

	statsFromDisk, err := IndexStats(indexPath)
	if err != nil {
		t.Fatalf("IndexStats: %v", err)
	}
	if statsFromDisk.FileCount != stats.FileCount || statsFromDisk.TrigramCount != stats.TrigramCount {
		t.Errorf("IndexStats() = %+v, want to match BuildIndexFromEntries result %+v", statsFromDisk, stats)
	}
}

func TestBuildIndexFromPathsWalksDirectory(t *testing.T) {
	srcDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(srcDir, "a.go"), []byte("package main\n\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(srcDir, ".git"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, ".git", "HEAD"), []byte("ref: refs/heads/main\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	indexPath := filepath.Join(t.TempDir(), "idx")
	stats, err := BuildIndexFromPaths(indexPath, []string{srcDir})
	if err != nil {
		t.Fatalf("BuildIndexFromPaths: %v", err)
	}
	if stats.FileCount != 1 {
		t.Errorf("FileCount = %d, want 1 (.git contents must be skipped)", stats.FileCount)
	}

	matches, err := GrepWithIndex(indexPath, "func main", false, 10)
	if err != nil {
		t.Fatalf("GrepWithIndex: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("GrepWithIndex(func main) = %+v, want 1 match", matches)
	}
}

func TestInvalidateCacheForcesReopen(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "idx")

	if _, err := BuildIndexFromEntries(indexPath, []Entry{{Path: "a.txt", Content: []byte("version one")}}); err != nil {
		t.Fatalf("BuildIndexFromEntries: %v", err)
	}
	first, err := IndexStats(indexPath)
	if err != nil {
		t.Fatalf("IndexStats: %v", err)
	}

	// BuildIndexFromEntries already invalidates the cache as part of its
	// atomic write; this directly exercises InvalidateCache's contract
	// that a subsequent lookup re-opens rather than serving a stale
	// cached Reader.
	if _, err := BuildIndexFromEntries(indexPath, []Entry{
		{Path: "a.txt", Content: []byte("version one")},
		{Path: "b.txt", Content: []byte("version two")},
	}); err != nil {
		t.Fatalf("BuildIndexFromEntries (second write): %v", err)
	}

	second, err := IndexStats(indexPath)
	if err != nil {
		t.Fatalf("IndexStats: %v", err)
	}
	if second.FileCount <= first.FileCount {
		t.Errorf("IndexStats after rebuild = %+v, want FileCount > %d", second, first.FileCount)
	}

	InvalidateCache(indexPath)
	third, err := IndexStats(indexPath)
	if err != nil {
		t.Fatalf("IndexStats after explicit InvalidateCache: %v", err)
	}
	if third.FileCount != second.FileCount {
		t.Errorf("IndexStats after InvalidateCache = %+v, want unchanged %+v", third, second)
	}
}
