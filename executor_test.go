// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFiles materializes files (path relative to a fresh temp dir ->
// content) on disk and returns the directory. Candidate verification
// needs real files to mmap, unlike the pure-index builder tests.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): %v", name, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
	}
	return dir
}

func buildAndOpen(t *testing.T, dir string, files map[string]string) *Reader {
	t.Helper()
	b := NewBuilder()
	for name, content := range files {
		b.AddFile(filepath.Join(dir, name), []byte(content))
	}
	data, err := b.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	indexPath := filepath.Join(t.TempDir(), "idx")
	if err := os.WriteFile(indexPath, data, 0o644); err != nil {
		t.Fatalf("WriteFile(index): %v", err)
	}
	r, err := Open(indexPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return r
}

func TestGrepHelloWorldFooBarBaz(t *testing.T) {
	files := map[string]string{
		"hello.txt": "hello there",
		"world.txt": "a whole world away",
		"fbb.txt":   "foo bar baz",
	}
	dir := writeFiles(t, files)
	r := buildAndOpen(t, dir, files)

	matches, err := r.grep("hello", false, 10)
	if err != nil {
		t.Fatalf("grep: %v", err)
	}
	if len(matches) != 1 || matches[0].File != filepath.Join(dir, "hello.txt") {
		t.Errorf("grep(hello) = %+v", matches)
	}

	matches, err = r.grep("baz", false, 10)
	if err != nil {
		t.Fatalf("grep: %v", err)
	}
	if len(matches) != 1 || matches[0].File != filepath.Join(dir, "fbb.txt") {
		t.Errorf("grep(baz) = %+v", matches)
	}
}

func TestGrepCaseInsensitive(t *testing.T) {
	files := map[string]string{"a.txt": "say HELLO there"}
	dir := writeFiles(t, files)
	r := buildAndOpen(t, dir, files)

	matches, err := r.grep("hello", true, 10)
	if err != nil {
		t.Fatalf("grep: %v", err)
	}
	if len(matches) != 1 || matches[0].Text != "HELLO" {
		t.Errorf("grep(hello, ignoreCase) = %+v", matches)
	}
}

func TestGrepRegexFunctionSignature(t *testing.T) {
	files := map[string]string{"r.txt": "fn   doSomething() {}\nplain text here"}
	dir := writeFiles(t, files)
	r := buildAndOpen(t, dir, files)

	matches, err := r.grep(`fn\s+\w+`, false, 10)
	if err != nil {
		t.Fatalf("grep: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("grep(fn\\s+\\w+) = %+v, want 1 match", matches)
	}
}

func TestGrepSkipsBinaryFiles(t *testing.T) {
	b := NewBuilder()
	dir := t.TempDir()
	binPath := filepath.Join(dir, "data.bin")
	binContent := append([]byte("hello"), make([]byte, 64)...) // mostly nulls
	if err := os.WriteFile(binPath, binContent, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	b.AddFile(binPath, binContent)

	// The builder drops binary content outright, so the file is never
	// registered and a query for its text finds nothing.
	if got, want := b.FileCount(), uint32(0); got != want {
		t.Fatalf("FileCount() = %d, want %d (binary file should be dropped by the builder)", got, want)
	}

	data, err := b.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	indexPath := filepath.Join(t.TempDir(), "idx")
	if err := os.WriteFile(indexPath, data, 0o644); err != nil {
		t.Fatalf("WriteFile(index): %v", err)
	}
	r, err := Open(indexPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	matches, err := r.grep("hello", false, 10)
	if err != nil {
		t.Fatalf("grep: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("grep(hello) = %+v, want no matches from a dropped binary file", matches)
	}
}

func TestGrepLiteralBoundaryF0ThroughF9(t *testing.T) {
	files := make(map[string]string)
	for i := 0; i < 10; i++ {
		name := string(rune('0'+i)) + ".txt"
		files[name] = "marker f" + string(rune('0'+i)) + " end"
	}
	dir := writeFiles(t, files)
	r := buildAndOpen(t, dir, files)

	matches, err := r.grep("f5", false, 100)
	if err != nil {
		t.Fatalf("grep: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("grep(f5) = %+v, want exactly 1 match", matches)
	}
}

func TestGrepMaxResultsZero(t *testing.T) {
	files := map[string]string{"a.txt": "hello hello hello"}
	dir := writeFiles(t, files)
	r := buildAndOpen(t, dir, files)

	matches, err := r.grep("hello", false, 0)
	if err != nil {
		t.Fatalf("grep: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("grep with maxResults=0 = %+v, want no matches", matches)
	}
}

func TestGrepEmptyPatternIsAllFiles(t *testing.T) {
	files := map[string]string{"a.txt": "hello", "b.txt": "world"}
	dir := writeFiles(t, files)
	r := buildAndOpen(t, dir, files)

	// An empty pattern degrades to All and matches the first line of
	// every candidate (an empty literal "matches" at position 0).
	paths := r.searchCandidates("", false)
	if len(paths) != 2 {
		t.Errorf("searchCandidates(\"\") = %v, want both files as candidates", paths)
	}
}

func TestGrepDotStarMatchesAllCandidates(t *testing.T) {
	files := map[string]string{"a.txt": "hello", "b.txt": "world"}
	dir := writeFiles(t, files)
	r := buildAndOpen(t, dir, files)

	paths := r.searchCandidates(".*", false)
	if len(paths) != 2 {
		t.Errorf("searchCandidates(\".*\") = %v, want both files as candidates", paths)
	}
}

func TestGrepAlternationOfLiterals(t *testing.T) {
	files := map[string]string{
		"a.txt": "contains hello only",
		"b.txt": "contains world only",
		"c.txt": "contains neither marker",
	}
	dir := writeFiles(t, files)
	r := buildAndOpen(t, dir, files)

	matches, err := r.grep("hello|world", false, 10)
	if err != nil {
		t.Fatalf("grep: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("grep(hello|world) = %+v, want 2 matches (one per file, none from c.txt)", matches)
	}
}

func TestGrepParallelVerifyAboveThreshold(t *testing.T) {
	files := make(map[string]string)
	for i := 0; i < ParallelVerifyThreshold+5; i++ {
		name := filepath.Join("dir", string(rune('a'+i))+".txt")
		files[name] = "needle present here"
	}
	dir := writeFiles(t, files)
	r := buildAndOpen(t, dir, files)

	matches, err := r.grep("needle", false, 1000)
	if err != nil {
		t.Fatalf("grep: %v", err)
	}
	if len(matches) != len(files) {
		t.Errorf("grep over %d candidates (parallel path) = %d matches, want %d", len(files), len(matches), len(files))
	}
}
