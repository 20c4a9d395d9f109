// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build darwin || freebsd || openbsd || netbsd

package trgm

import (
	"fmt"
	"os"
	"syscall"
)

// Missing from package syscall on freebsd, openbsd.
const (
	protRead  = 1
	mapShared = 1
)

func mmapFile(f *os.File) (*mmapHandle, error) {
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := st.Size()
	if int64(int(size+4095)) != size+4095 {
		return nil, fmt.Errorf("%s: too large for mmap", f.Name())
	}
	n := int(size)
	if n == 0 {
		return &mmapHandle{}, nil
	}
	data, err := syscall.Mmap(int(f.Fd()), 0, (n+4095)&^4095, protRead, mapShared)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", f.Name(), err)
	}
	return &mmapHandle{data: data[:n]}, nil
}
