// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

import (
	"context"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// candidateIDs evaluates q against r's posting lists, returning the
// over-approximated set of file IDs that might match. All returns
// every registered ID; And intersects the query's trigram posting
// lists, short-circuiting to empty as soon as one trigram is absent
// from the index; Or unions its sub-queries' results.
func candidateIDs(r *Reader, q Query) []uint32 {
	switch q.Op {
	case QAll:
		ids := make([]uint32, r.FileCount())
		for i := range ids {
			ids[i] = uint32(i)
		}
		return ids

	case QAnd:
		if len(q.Trigrams) == 0 {
			return candidateIDs(r, allQuery)
		}
		lists := make([]*PostingList, 0, len(q.Trigrams))
		for _, t := range q.Trigrams {
			pl, ok := r.PostingsOf(t)
			if !ok {
				return nil
			}
			lists = append(lists, pl)
		}
		return Intersect(lists).ToSlice()

	case QOr:
		lists := make([]*PostingList, 0, len(q.Sub))
		for _, sub := range q.Sub {
			pl := NewPostingList()
			for _, id := range candidateIDs(r, sub) {
				pl.Insert(id)
			}
			lists = append(lists, pl)
		}
		return Union(lists).ToSlice()

	default:
		return nil
	}
}

// searchCandidates compiles pattern into a Query and returns the
// candidate paths it selects from r, without verifying them against
// the actual file content. This is the same candidate phase grep runs
// internally; SearchCandidates exposes it at package level for callers
// that want to do their own verification (for example against a
// content-addressed store rather than the local filesystem).
func (r *Reader) searchCandidates(pattern string, ignoreCase bool) []string {
	q := BuildQuery(pattern, ignoreCase)
	ids := candidateIDs(r, q)
	paths := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.PathOf(id); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

// grep runs the full candidate-then-verify search: it compiles pattern,
// intersects/unions posting lists to find candidate files, then opens
// and scans each candidate's real content with the line matcher,
// stopping once maxResults matches have been produced. The order of
// matches within one file is ascending by line number; the order of
// files in the result is unspecified, since verification may run in
// parallel across candidates.
//
// A candidate that fails to open, exceeds MaxVerifyFileSize, is empty,
// or is not valid UTF-8 is skipped silently; its absence from the
// result is not distinguishable from "no matches in that file." Only a
// failure to compile pattern as a search mode is fatal to the whole
// call, since no file could be verified without it.
func (r *Reader) grep(pattern string, ignoreCase bool, maxResults int) ([]Match, error) {
	if maxResults <= 0 {
		return nil, nil
	}

	q := BuildQuery(pattern, ignoreCase)
	ids := candidateIDs(r, q)
	if len(ids) == 0 {
		return nil, nil
	}

	mode, err := buildSearchMode(pattern, ignoreCase)
	if err != nil {
		return nil, newError(KindInput, "grep", "", &InvalidPatternError{Pattern: pattern, Err: err})
	}

	type candidate struct {
		path string
	}
	candidates := make([]candidate, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.PathOf(id); ok {
			candidates = append(candidates, candidate{path: p})
		}
	}

	if len(candidates) < ParallelVerifyThreshold {
		var results []Match
		for _, c := range candidates {
			if len(results) >= maxResults {
				break
			}
			matches := verifyFile(c.path, mode, maxResults-len(results))
			results = append(results, matches...)
		}
		return results, nil
	}

	var budget atomic.Int64
	budget.Store(int64(maxResults))

	var mu sync.Mutex
	var results []Match

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(workerLimit())
	for _, c := range candidates {
		c := c
		g.Go(func() error {
			remaining := budget.Load()
			if remaining <= 0 {
				return nil
			}
			matches := verifyFile(c.path, mode, int(remaining))
			if len(matches) == 0 {
				return nil
			}
			mu.Lock()
			results = append(results, matches...)
			mu.Unlock()
			budget.Add(-int64(len(matches)))
			return nil
		})
	}
	_ = g.Wait()

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// workerLimit bounds the number of goroutines verifying candidates
// concurrently. It is a function rather than a package-level constant
// so it reads the runtime's current GOMAXPROCS rather than a value
// fixed at init time.
func workerLimit() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}

// verifyFile opens path, mmaps it, and runs the line matcher against
// its content. It returns nil if the file cannot be opened, is empty or
// oversized, or is not valid UTF-8, all silently-skipped conditions
// per the executor's error-handling contract.
func verifyFile(path string, mode *searchMode, maxResults int) []Match {
	if maxResults <= 0 {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.Size() == 0 || info.Size() > MaxVerifyFileSize {
		return nil
	}

	mm, err := mmapFile(f)
	if err != nil {
		return nil
	}
	if !utf8.Valid(mm.data) {
		return nil
	}

	return searchLines(path, string(mm.data), mode, maxResults)
}
