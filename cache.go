// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

import (
	"path/filepath"
	"sync"
)

// readerCache holds process-wide, shared Readers keyed by the canonical
// (absolute, cleaned) form of the index path they were opened from. A
// Reader is immutable once open, so any number of callers can share one
// without locking around query operations; the cache's own mutex only
// protects the map itself.
var readerCache = struct {
	mu sync.RWMutex
	m  map[string]*Reader
}{m: make(map[string]*Reader)}

// getCachedReader returns the shared Reader for path, opening and
// caching one if this is the first request for it. The check is done
// twice: once under a read lock, to make the common warm-cache case
// allocation-free, and again under the write lock before inserting, in
// case another goroutine won the race to open the same path first.
func getCachedReader(path string) (*Reader, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}

	readerCache.mu.RLock()
	r, ok := readerCache.m[key]
	readerCache.mu.RUnlock()
	if ok {
		return r, nil
	}

	readerCache.mu.Lock()
	defer readerCache.mu.Unlock()
	if r, ok := readerCache.m[key]; ok {
		return r, nil
	}

	r, err = Open(path)
	if err != nil {
		return nil, err
	}
	readerCache.m[key] = r
	return r, nil
}

// InvalidateCache removes any cached Reader for path from the
// process-wide cache. It does not close or unmap the evicted Reader;
// goroutines already holding a reference to it may keep querying it
// until they're done, since a Reader never mutates once open. Callers
// that rebuild an index in place must call InvalidateCache after the
// new file is written so that the next getCachedReader call re-opens
// the fresh content instead of serving the stale mapping.
func InvalidateCache(path string) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	readerCache.mu.Lock()
	delete(readerCache.m, key)
	readerCache.mu.Unlock()
}
