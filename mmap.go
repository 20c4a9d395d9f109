// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

// mmapHandle is a read-only memory-mapped view of a file. The
// platform-specific mmapFile implementations (mmap_linux.go,
// mmap_bsd.go, mmap_windows.go) populate data; the underlying file
// descriptor is not needed past the mmap call and is not retained.
type mmapHandle struct {
	data []byte
}
