// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

import (
	"regexp/syntax"
	"sort"
	"strings"
)

// QueryOp tags the shape of a Query.
type QueryOp int

const (
	// QAll means every file is a candidate; no useful trigrams could
	// be extracted from the pattern.
	QAll QueryOp = iota
	// QAnd means every trigram in Trigrams must be present.
	QAnd
	// QOr means at least one sub-query in Sub must match.
	QOr
)

// Query is the planner's compiled output: a tagged value that is either
// All (no filtering possible), And([]Trigram) (conjunction), or
// Or([]Query) (disjunction).
type Query struct {
	Op       QueryOp
	Trigrams []Trigram
	Sub      []Query
}

// allQuery is the shared All value; every All query is equivalent, so
// callers may compare with IsAll rather than reflect.DeepEqual.
var allQuery = Query{Op: QAll}

// IsAll reports whether q matches every file (no filtering).
func (q Query) IsAll() bool { return q.Op == QAll }

// regexMeta holds the regex metacharacters that disqualify a pattern
// from the literal fast path.
const regexMeta = `.*+?()[]{}|^$\`

func isLiteralPattern(pattern string) bool {
	return !strings.ContainsAny(pattern, regexMeta)
}

// BuildQuery compiles pattern into a Query. When ignoreCase is set, the
// pattern is lowercased before trigram extraction, matching it against
// the lowercased trigrams the builder also stores (see Builder.AddFile).
//
// BuildQuery never fails: a pattern that cannot be parsed as a regex, or
// that carries no useful trigrams, degrades to All. The executor then
// falls back to a full scan, which is always correct; the planner's
// only job is to shrink the candidate set, never to exclude a file that
// could match.
func BuildQuery(pattern string, ignoreCase bool) Query {
	if ignoreCase {
		pattern = strings.ToLower(pattern)
	}
	if len(pattern) < 3 {
		return allQuery
	}
	if isLiteralPattern(pattern) {
		trigrams := extractTrigramsForQuery([]byte(pattern))
		if len(trigrams) == 0 {
			return allQuery
		}
		return Query{Op: QAnd, Trigrams: trigrams}
	}
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return allQuery
	}
	return queryFromRegexp(re)
}

// queryFromRegexp walks a parsed regexp syntax tree, extracting a
// conjunctive or disjunctive trigram query that over-approximates the
// pattern: every transformation below only ever widens the candidate
// set, never narrows it past what the regex could actually match.
func queryFromRegexp(re *syntax.Regexp) Query {
	switch re.Op {
	case syntax.OpLiteral:
		return queryFromLiteralRunes(re.Rune)

	case syntax.OpConcat:
		return queryFromConcat(re.Sub)

	case syntax.OpAlternate:
		subs := make([]Query, len(re.Sub))
		for i, sub := range re.Sub {
			subs[i] = queryFromRegexp(sub)
			if subs[i].IsAll() {
				// One un-filterable branch means the whole
				// alternation can't be filtered.
				return allQuery
			}
		}
		return Query{Op: QOr, Sub: subs}

	case syntax.OpStar, syntax.OpQuest:
		// Zero occurrences are allowed, so the sub-pattern need not
		// appear at all.
		return allQuery

	case syntax.OpPlus:
		// At least one occurrence is required. regexp/syntax only sets
		// Min for OpRepeat, so + is handled on its own.
		return queryFromRegexp(re.Sub[0])

	case syntax.OpRepeat:
		if re.Min >= 1 {
			return queryFromRegexp(re.Sub[0])
		}
		return allQuery

	case syntax.OpCapture:
		return queryFromRegexp(re.Sub[0])

	default:
		// Character class, anchors, look-around equivalents, empty
		// match: no useful trigrams.
		return allQuery
	}
}

func queryFromLiteralRunes(runes []rune) Query {
	bytes := []byte(string(runes))
	if len(bytes) < 3 {
		return allQuery
	}
	trigrams := extractTrigramsForQuery(bytes)
	if len(trigrams) == 0 {
		return allQuery
	}
	return Query{Op: QAnd, Trigrams: trigrams}
}

// queryFromConcat walks a concatenation's children, accumulating
// contiguous runs of literal bytes and extracting trigrams from each
// run once a non-literal child (or the end of the list) is reached; it
// recurses into non-literal children and splices any resulting
// conjunctive trigrams into the same consolidated And.
func queryFromConcat(subs []*syntax.Regexp) Query {
	var all []Trigram
	var run []byte

	flush := func() {
		if len(run) >= 3 {
			all = append(all, extractTrigramsForQuery(run)...)
		}
		run = nil
	}

	for _, sub := range subs {
		if sub.Op == syntax.OpLiteral {
			run = append(run, []byte(string(sub.Rune))...)
			continue
		}
		flush()
		if q := queryFromRegexp(sub); q.Op == QAnd {
			all = append(all, q.Trigrams...)
		}
	}
	flush()

	if len(all) == 0 {
		return allQuery
	}
	return Query{Op: QAnd, Trigrams: dedupTrigrams(all)}
}

func dedupTrigrams(ts []Trigram) []Trigram {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Less(ts[j]) })
	out := ts[:0]
	for i, t := range ts {
		if i == 0 || t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}
