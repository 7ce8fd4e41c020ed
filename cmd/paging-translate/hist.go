// Copyright 2025 The paging Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

// A PageHist counts references per page number across a trace. The
// single-level layout has an 8-bit page field, so a fixed array
// covers the whole page space.
type PageHist struct {
	counts [1 << 8]uint64
}

func (h *PageHist) Add(page uint64) {
	h.counts[page] += 1
}

func (h *PageHist) ForEach(f func(page, count uint64)) {
	for i := range h.counts {
		if h.counts[i] != 0 {
			f(uint64(i), h.counts[i])
		}
	}
}
