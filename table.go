// Copyright 2025 The paging Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paging

import (
	"errors"
	"fmt"
)

// Lookup failures. Translate wraps these with the offending page
// number; classify with errors.Is.
var (
	// ErrPageOutOfRange reports a page number past the end of the
	// table.
	ErrPageOutOfRange = errors.New("page number out of range")

	// ErrPageNotResident reports a page whose presence bit is clear:
	// the page lives in swap, not in physical memory.
	ErrPageNotResident = errors.New("page is in swap")
)

// An Entry is one page-table entry: whether the page is resident in
// physical memory, whether it has been written since it was loaded,
// and the frame backing it. For a non-resident page Frame names the
// swap block holding it instead.
type Entry struct {
	Present  bool   `json:"present"`
	Modified bool   `json:"modified"`
	Frame    uint32 `json:"frame"`
}

// A Table maps page numbers to entries by position. Tables are plain
// values; lookups never mutate them, so a Table may be shared freely.
type Table []Entry

// DefaultTable returns the eight-entry table fixed by the exercise
// statement. Pages 1, 6 and 7 are in swap.
func DefaultTable() Table {
	return Table{
		{Present: true, Modified: true, Frame: 0},
		{Present: false, Modified: false, Frame: 8},
		{Present: true, Modified: false, Frame: 9},
		{Present: true, Modified: true, Frame: 14},
		{Present: true, Modified: false, Frame: 3},
		{Present: true, Modified: false, Frame: 7},
		{Present: false, Modified: true, Frame: 25},
		{Present: false, Modified: true, Frame: 16},
	}
}

// Lookup returns the entry for page, or ErrPageOutOfRange if the
// table has no such page.
func (t Table) Lookup(page uint64) (Entry, error) {
	if page >= uint64(len(t)) {
		return Entry{}, fmt.Errorf("page %d: %w (table has %d entries)", page, ErrPageOutOfRange, len(t))
	}
	return t[page], nil
}

// Translate computes the physical address of the byte at offset
// within page: the page's frame scaled by the page size, plus the
// offset. It fails with ErrPageOutOfRange or ErrPageNotResident when
// the page has no usable frame.
func (t Table) Translate(page, offset uint64) (Address, error) {
	e, err := t.Lookup(page)
	if err != nil {
		return 0, err
	}
	if !e.Present {
		return 0, fmt.Errorf("page %d: %w", page, ErrPageNotResident)
	}
	return Address(e.Frame)*PageSize + Address(offset), nil
}
