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

var usageMessage = `usage: trgmindex [-index path] path...

trgmindex builds the trigram index that trgmgrep searches. The index is
the file named by the -index flag or $TRGMINDEX variable. If both are
empty, the index path defaults to ~/.trgmindex.

	trgmindex path...

walks the file or directory tree named by each path and writes a fresh
index covering everything found, skipping ".git", "node_modules", and
anything excluded by a .gitignore encountered along the way. Unlike
cindex, trgmindex always builds a complete index from the given paths;
it does not merge with or preserve a previous index.
`

func usage() {
	fmt.Fprint(os.Stderr, usageMessage)
	os.Exit(2)
}

var indexFlag = flag.String("index", "", "path to the index")

func defaultIndexPath() string {
	if p := *indexFlag; p != "" {
		return p
	}
	if p := os.Getenv("TRGMINDEX"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".trgmindex"
	}
	return home + "/.trgmindex"
}

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	stats, err := trgm.BuildIndexFromPaths(defaultIndexPath(), args)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("file_count=%d trigram_count=%d index_size_bytes=%d\n",
		stats.FileCount, stats.TrigramCount, stats.IndexSizeBytes)
}
