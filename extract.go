// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

// Trigram is a fixed 3-byte window of file content.
type Trigram [3]byte

// Less reports whether t sorts before other under the standard ordering
// on 3-byte keys, the ordering the trigram table is sorted by.
func (t Trigram) Less(other Trigram) bool {
	return t[0] < other[0] ||
		(t[0] == other[0] && t[1] < other[1]) ||
		(t[0] == other[0] && t[1] == other[1] && t[2] < other[2])
}

// extractTrigrams returns the set of unique 3-byte windows in content.
// It returns nil for content shorter than 3 bytes, for content over
// MaxIndexedFileSize, and for content that isBinary reports as binary.
func extractTrigrams(content []byte) map[Trigram]struct{} {
	if len(content) < 3 || len(content) > MaxIndexedFileSize || isBinary(content) {
		return nil
	}
	return windows(content)
}

// extractTrigramsForQuery returns the set of unique 3-byte windows in
// pattern, with no binary check; a query pattern is always text. It
// returns an empty slice for patterns shorter than 3 bytes.
func extractTrigramsForQuery(pattern []byte) []Trigram {
	if len(pattern) < 3 {
		return nil
	}
	seen := windows(pattern)
	out := make([]Trigram, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	return out
}

func windows(b []byte) map[Trigram]struct{} {
	seen := make(map[Trigram]struct{}, len(b))
	for i := 0; i+3 <= len(b); i++ {
		seen[Trigram{b[i], b[i+1], b[i+2]}] = struct{}{}
	}
	return seen
}

// isBinary samples up to BinarySampleBytes of content and reports whether
// the null-byte ratio exceeds BinaryNullRatioThreshold. Empty content is
// never binary.
func isBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	sample := content
	if len(sample) > BinarySampleBytes {
		sample = sample[:BinarySampleBytes]
	}
	var nulls int
	for _, b := range sample {
		if b == 0 {
			nulls++
		}
	}
	return float64(nulls)/float64(len(sample)) > BinaryNullRatioThreshold
}
