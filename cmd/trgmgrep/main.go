// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nexi-lab/trgm"
)

var usageMessage = `usage: trgmgrep [-i] [-n N] -index path pattern

trgmgrep behaves like grep over all files in a trigram index, searching
for pattern, a regular expression in Go's regexp/syntax dialect.

The -i flag makes the search case-insensitive, as in grep. The -n flag
caps the number of matches reported (default 1000); trgmgrep stops
verifying candidates once that many matches have been found.

trgmgrep relies on an index built ahead of time by trgmindex. The path
to the index is named by the -index flag or $TRGMINDEX variable.
`

func usage() {
	fmt.Fprint(os.Stderr, usageMessage)
	os.Exit(2)
}

var (
	iFlag     = flag.Bool("i", false, "case-insensitive search")
	nFlag     = flag.Int("n", 1000, "maximum number of matches to report")
	indexFlag = flag.String("index", "", "path to the index")
)

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		usage()
	}

	indexPath := *indexFlag
	if indexPath == "" {
		indexPath = os.Getenv("TRGMINDEX")
	}
	if indexPath == "" {
		usage()
	}

	matches, err := trgm.GrepWithIndex(indexPath, args[0], *iFlag, *nFlag)
	if err != nil {
		log.Fatal(err)
	}
	for _, m := range matches {
		fmt.Printf("%s:%d:%s\n", m.File, m.Line, m.Content)
	}
	if len(matches) == 0 {
		os.Exit(1)
	}
}
