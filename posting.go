// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trgm

import "github.com/RoaringBitmap/roaring"

// PostingList is a compressed ordered set of file IDs, backed by a
// Roaring bitmap. Its zero value is not useful; use NewPostingList.
type PostingList struct {
	bitmap *roaring.Bitmap
}

// NewPostingList returns an empty posting list.
func NewPostingList() *PostingList {
	return &PostingList{bitmap: roaring.NewBitmap()}
}

func postingListFromBitmap(bm *roaring.Bitmap) *PostingList {
	return &PostingList{bitmap: bm}
}

// Insert adds fileID to the set.
func (p *PostingList) Insert(fileID uint32) { p.bitmap.Add(fileID) }

// Contains reports whether fileID is a member.
func (p *PostingList) Contains(fileID uint32) bool { return p.bitmap.Contains(fileID) }

// Len returns the number of file IDs in the set.
func (p *PostingList) Len() uint64 { return p.bitmap.GetCardinality() }

// IsEmpty reports whether the set has no members.
func (p *PostingList) IsEmpty() bool { return p.bitmap.IsEmpty() }

// ToSlice returns the file IDs in ascending order.
func (p *PostingList) ToSlice() []uint32 { return p.bitmap.ToArray() }

// Serialize writes the posting list's binary form, suitable for storing
// in the posting section of an index file and later restoring with
// DeserializePostingList.
func (p *PostingList) Serialize() ([]byte, error) { return p.bitmap.ToBytes() }

// DeserializePostingList restores a posting list from bytes previously
// produced by Serialize. It reads in place from data with no copy when
// data comes from a memory-mapped buffer.
func DeserializePostingList(data []byte) (*PostingList, error) {
	bm := roaring.NewBitmap()
	if _, err := bm.FromBuffer(data); err != nil {
		return nil, err
	}
	return &PostingList{bitmap: bm}, nil
}

// Intersect ANDs together every list in lists, short-circuiting as soon
// as the running intersection is empty. An empty input returns an empty
// list; a single-element input returns a clone of that list.
func Intersect(lists []*PostingList) *PostingList {
	if len(lists) == 0 {
		return NewPostingList()
	}
	result := lists[0].bitmap.Clone()
	for _, l := range lists[1:] {
		result.And(l.bitmap)
		if result.IsEmpty() {
			break
		}
	}
	return postingListFromBitmap(result)
}

// Union ORs together every list in lists. An empty input returns an
// empty list.
func Union(lists []*PostingList) *PostingList {
	if len(lists) == 0 {
		return NewPostingList()
	}
	result := lists[0].bitmap.Clone()
	for _, l := range lists[1:] {
		result.Or(l.bitmap)
	}
	return postingListFromBitmap(result)
}
