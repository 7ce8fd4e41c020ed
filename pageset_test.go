package paging

import "testing"

func TestPageSetAdd(t *testing.T) {
	var s PageSet
	if !s.Add(0) {
		t.Error("first Add(0) = false, want true")
	}
	if s.Add(0) {
		t.Error("second Add(0) = true, want false")
	}
	// Last bit of the first leaf and first bit of the second.
	if !s.Add(4095) {
		t.Error("Add(4095) = false, want true")
	}
	if !s.Add(4096) {
		t.Error("Add(4096) = false, want true")
	}
	if s.Add(4095) || s.Add(4096) {
		t.Error("re-adding leaf boundary pages reported them as new")
	}
	if !s.Add(1<<20 - 1) {
		t.Error("Add of the last page = false, want true")
	}
}

func TestPageSetDistinct(t *testing.T) {
	var s PageSet
	distinct := 0
	for i := 0; i < 10000; i++ {
		if s.Add(uint64(i % 257)) {
			distinct++
		}
	}
	if distinct != 257 {
		t.Errorf("counted %d distinct pages, want 257", distinct)
	}
}
