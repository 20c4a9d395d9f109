// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

import (
	"os"
	"testing"
)

var postFiles = map[string]string{
	"file0": "",
	"file1": "hello",
	"file2": "world",
	"file3": "foo bar baz",
}

func buildIndex(t *testing.T, files map[string]string) (string, *Reader) {
	t.Helper()
	b := NewBuilder()
	for path, content := range files {
		b.AddFile(path, []byte(content))
	}
	data, err := b.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := os.CreateTemp(t.TempDir(), "trgm-index-*")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	if _, err := f.Write(data); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close temp file: %v", err)
	}

	r, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return f.Name(), r
}

func TestBuilderWriteRoundTrip(t *testing.T) {
	_, r := buildIndex(t, postFiles)
	if got, want := r.FileCount(), uint32(len(postFiles)); got != want {
		t.Errorf("FileCount() = %d, want %d", got, want)
	}

	seen := make(map[string]bool)
	for i := uint32(0); i < r.FileCount(); i++ {
		p, ok := r.PathOf(i)
		if !ok {
			t.Errorf("PathOf(%d) not found", i)
			continue
		}
		seen[p] = true
	}
	for path := range postFiles {
		if !seen[path] {
			t.Errorf("index missing path %q", path)
		}
	}
}

func TestBuilderDeterministic(t *testing.T) {
	b1 := NewBuilder()
	b2 := NewBuilder()
	for path, content := range postFiles {
		b1.AddFile(path, []byte(content))
		b2.AddFile(path, []byte(content))
	}
	out1, err := b1.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	out2, err := b2.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if string(out1) != string(out2) {
		t.Errorf("two builders given the same AddFile sequence produced different output")
	}
}

func TestBuilderSkipsBinary(t *testing.T) {
	b := NewBuilder()
	b.AddFile("small.txt", []byte("abc"))
	b.AddFile("binary.bin", append([]byte("abc"), make([]byte, 64)...)) // mostly nulls
	if got, want := b.FileCount(), uint32(1); got != want {
		t.Errorf("FileCount() = %d, want %d (binary file should be dropped)", got, want)
	}
}

func TestBuilderShortFileRegisteredWithNoTrigrams(t *testing.T) {
	b := NewBuilder()
	b.AddFile("two.txt", []byte("ab")) // shorter than one trigram window
	if got, want := b.FileCount(), uint32(1); got != want {
		t.Errorf("FileCount() = %d, want %d", got, want)
	}
	if got := b.TrigramCount(); got != 0 {
		t.Errorf("TrigramCount() = %d, want 0", got)
	}
}

func TestPathTooLong(t *testing.T) {
	b := NewBuilder()
	long := make([]byte, 1<<16)
	for i := range long {
		long[i] = 'a'
	}
	b.AddFile(string(long), []byte("hello"))
	if _, err := b.Write(); err == nil {
		t.Error("Write() with an oversized path: want error, got nil")
	}
}
