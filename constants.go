// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

// Tunable constants shared by the builder, reader, and executor. These
// mirror the fixed configuration the reference implementation recognizes;
// none of them are read from flags or environment at runtime.
const (
	// MaxIndexedFileSize is the largest file content the builder will
	// extract trigrams from; larger files are dropped entirely, see
	// Builder.AddFile.
	MaxIndexedFileSize = 1 << 30 // 1 GiB

	// BinaryNullRatioThreshold is the null-byte ratio above which
	// sampled content is treated as binary.
	BinaryNullRatioThreshold = 0.10

	// BinarySampleBytes is how much of a file's content is sampled when
	// checking for binary content.
	BinarySampleBytes = 8 << 10 // 8 KiB

	// MaxVerifyFileSize is the largest candidate file the executor will
	// mmap and scan during verification.
	MaxVerifyFileSize = 1 << 30 // 1 GiB

	// ParallelVerifyThreshold is the candidate count at or above which
	// the executor verifies candidates concurrently instead of in a
	// single goroutine.
	ParallelVerifyThreshold = 10

	// IndexMagic is the four ASCII bytes every valid index file begins
	// with.
	IndexMagic = "TRGM"

	// IndexVersion is the only format version this package can read or
	// write.
	IndexVersion uint32 = 1
)
