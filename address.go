// Copyright 2025 The paging Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package paging models virtual-to-physical address translation in a
// paged memory system: bit-field layouts that carve virtual addresses
// into page-table indices and offsets, a page table that maps page
// numbers to physical frames, and a cost model for the average access
// time of a TLB backed by a multi-level table walk.
package paging

import (
	"fmt"
	"strconv"
	"strings"
)

// An Address is a virtual or physical memory address. Addresses are
// carried as 64-bit values regardless of how many bits a layout
// actually examines; bits above a layout's span are ignored.
type Address uint64

const (
	// PageShift is log2(PageSize): the number of offset bits in a page.
	PageShift = 12

	// PageSize is the size of a page in bytes.
	PageSize = 1 << PageShift
)

// A Field is one bit-field of an address: Bits wide, starting at bit
// Shift. Fields must be narrower than 64 bits.
type Field struct {
	Shift uint8
	Bits  uint8
}

// Mask returns the field's unshifted mask: the low Bits bits set.
func (f Field) Mask() uint64 {
	return 1<<f.Bits - 1
}

// Extract returns the value of the field in a.
func (f Field) Extract(a Address) uint64 {
	return uint64(a>>f.Shift) & f.Mask()
}

// Place positions a field value at the field's bit position. Values
// wider than the field are truncated to it.
func (f Field) Place(v uint64) Address {
	return Address(v&f.Mask()) << f.Shift
}

// Bit widths of the multi-level layout's index fields, from the root
// of the walk down. Together with the page offset they consume
// 4+8+8+12 = 32 address bits.
const (
	level1Bits = 4
	level2Bits = 8
	level3Bits = 8
)

// A WalkLayout describes how a virtual address is carved into
// page-table indices for a multi-level walk, plus a page offset.
type WalkLayout struct {
	Level1 Field
	Level2 Field
	Level3 Field
	Offset Field
}

// ThreeLevel is the layout of the exercise's 36-bit virtual
// addresses: a 12-bit page offset and, above it, third-, second- and
// first-level table indices of 8, 8 and 4 bits. Note that the fields
// only cover the low 32 bits; bits 32..35 of a nominal 36-bit address
// never reach any table. See Span.
var ThreeLevel = WalkLayout{
	Level1: Field{Shift: PageShift + level3Bits + level2Bits, Bits: level1Bits},
	Level2: Field{Shift: PageShift + level3Bits, Bits: level2Bits},
	Level3: Field{Shift: PageShift, Bits: level3Bits},
	Offset: Field{Shift: 0, Bits: PageShift},
}

// A Walk holds the fields of one split virtual address: the index
// into each level of the page-table tree and the offset within the
// page.
type Walk struct {
	Level1 uint64
	Level2 uint64
	Level3 uint64
	Offset uint64
}

// Split carves a into the layout's fields. Split is total: it never
// fails, and address bits not covered by any field are ignored.
func (l WalkLayout) Split(a Address) Walk {
	return Walk{
		Level1: l.Level1.Extract(a),
		Level2: l.Level2.Extract(a),
		Level3: l.Level3.Extract(a),
		Offset: l.Offset.Extract(a),
	}
}

// Join reassembles a split address: every field placed back at its
// bit position. Join(Split(a)) equals a masked to the layout's span.
func (l WalkLayout) Join(w Walk) Address {
	return l.Level1.Place(w.Level1) |
		l.Level2.Place(w.Level2) |
		l.Level3.Place(w.Level3) |
		l.Offset.Place(w.Offset)
}

// Span returns the number of low-order address bits the layout
// examines. For ThreeLevel this is 32: the four bits that would
// complete a 36-bit address fall above every field.
func (l WalkLayout) Span() uint {
	return span(l.Level1, l.Level2, l.Level3, l.Offset)
}

// PageIndex returns the flat virtual page number formed by
// concatenating the three level indices, most significant first. It
// equals the address bits above the offset, within the layout's span.
func (w Walk) PageIndex() uint64 {
	return w.Level1<<(level2Bits+level3Bits) | w.Level2<<level3Bits | w.Level3
}

// A PageLayout describes a single-level paging layout: one page
// number field and the page offset.
type PageLayout struct {
	Page   Field
	Offset Field
}

// SingleLevel is the layout of the exercise's single-table virtual
// addresses: a 12-bit page offset and an 8-bit page number above it.
// Address bits 20 and up are not examined.
var SingleLevel = PageLayout{
	Page:   Field{Shift: PageShift, Bits: 8},
	Offset: Field{Shift: 0, Bits: PageShift},
}

// Split carves a into a page number and a page offset.
func (l PageLayout) Split(a Address) (page, offset uint64) {
	return l.Page.Extract(a), l.Offset.Extract(a)
}

// Join reassembles an address from a page number and an offset.
func (l PageLayout) Join(page, offset uint64) Address {
	return l.Page.Place(page) | l.Offset.Place(offset)
}

// Span returns the number of low-order address bits the layout
// examines.
func (l PageLayout) Span() uint {
	return span(l.Page, l.Offset)
}

func span(fields ...Field) uint {
	max := uint(0)
	for _, f := range fields {
		if top := uint(f.Shift) + uint(f.Bits); top > max {
			max = top
		}
	}
	return max
}

// ParseAddress interprets s as a hexadecimal virtual address. An
// optional 0x or 0X prefix is accepted; the radix is always 16.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("not a hexadecimal address: %q", s)
	}
	return Address(v), nil
}
