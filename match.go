// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Match is a single line-oriented search hit.
type Match struct {
	File    string
	Line    int // 1-based
	Content string
	Text    string // the matched substring
}

// searchModeKind tags which of the three line-matching strategies a
// searchMode uses.
type searchModeKind int

const (
	modeLiteral searchModeKind = iota
	modeLiteralIgnoreCase
	modeRegex
)

// searchMode is a compiled search strategy, built once per query and
// reused across every candidate file.
type searchMode struct {
	kind    searchModeKind
	literal string // modeLiteral: pattern; modeLiteralIgnoreCase: lowercased pattern
	re      *regexp.Regexp
}

// buildSearchMode compiles pattern into a searchMode. Literal patterns
// (no regex metacharacters) use the fast literal modes; anything else
// is compiled as a regular expression, with ignoreCase applied via the
// "(?i)" flag the standard regexp package recognizes in place of a
// builder option.
func buildSearchMode(pattern string, ignoreCase bool) (*searchMode, error) {
	if isLiteralPattern(pattern) {
		if ignoreCase {
			return &searchMode{kind: modeLiteralIgnoreCase, literal: strings.ToLower(pattern)}, nil
		}
		return &searchMode{kind: modeLiteral, literal: pattern}, nil
	}
	expr := pattern
	if ignoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &searchMode{kind: modeRegex, re: re}, nil
}

// searchLines scans the lines of content for matches against mode,
// emitting up to maxResults Match records for file. Only the first
// match per line is emitted. Lines are split on "\n" (with any trailing
// "\r" trimmed, covering "\r\n" line endings); an empty trailing line is
// not emitted.
func searchLines(file string, content string, mode *searchMode, maxResults int) []Match {
	if maxResults <= 0 {
		return nil
	}
	var results []Match

	for lineNum, line := range splitLines(content) {
		if len(results) >= maxResults {
			break
		}
		switch mode.kind {
		case modeLiteral:
			if idx := strings.Index(line, mode.literal); idx >= 0 {
				results = append(results, Match{
					File: file, Line: lineNum + 1, Content: line,
					Text: line[idx : idx+len(mode.literal)],
				})
			}
		case modeLiteralIgnoreCase:
			lower := strings.ToLower(line)
			if idx := strings.Index(lower, mode.literal); idx >= 0 {
				// unicode.ToLower maps one rune to one rune, so the
				// match's rune offsets in the lowercased line are the
				// same rune offsets in the original line; only the
				// byte lengths can differ between the two strings.
				startRune := utf8.RuneCountInString(lower[:idx])
				endRune := startRune + utf8.RuneCountInString(mode.literal)
				start := runeOffset(line, startRune)
				end := runeOffset(line, endRune)
				results = append(results, Match{
					File: file, Line: lineNum + 1, Content: line,
					Text: line[start:end],
				})
			}
		case modeRegex:
			if loc := mode.re.FindStringIndex(line); loc != nil {
				results = append(results, Match{
					File: file, Line: lineNum + 1, Content: line,
					Text: line[loc[0]:loc[1]],
				})
			}
		}
	}
	return results
}

// runeOffset returns the byte offset of the n-th rune in s. n may equal
// the total rune count of s, in which case it returns len(s).
func runeOffset(s string, n int) int {
	i := 0
	for idx := range s {
		if i == n {
			return idx
		}
		i++
	}
	return len(s)
}

// splitLines splits content on line boundaries the way grep does: "\n"
// terminates a line, any "\r" immediately preceding it is stripped, and
// a trailing empty line produced by a final "\n" is not emitted.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	parts := strings.Split(content, "\n")
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}
