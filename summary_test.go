package paging

import "testing"

func TestSummaryObserve(t *testing.T) {
	table := DefaultTable()
	var sum Summary
	addrs := []Address{0x0123, 0x1FFF, 0x2000, 0x0456, 0x8ABC, 0xFF000}
	for _, addr := range addrs {
		page, offset := SingleLevel.Split(addr)
		_, err := table.Translate(page, offset)
		sum.Observe(page, err)
	}
	if sum.Addresses != 6 {
		t.Errorf("Addresses = %d, want 6", sum.Addresses)
	}
	if sum.Resident != 3 {
		t.Errorf("Resident = %d, want 3", sum.Resident)
	}
	if sum.Swapped != 1 {
		t.Errorf("Swapped = %d, want 1", sum.Swapped)
	}
	if sum.OutOfRange != 2 {
		t.Errorf("OutOfRange = %d, want 2", sum.OutOfRange)
	}
	if sum.DistinctPages != 5 {
		t.Errorf("DistinctPages = %d, want 5", sum.DistinctPages)
	}
	if sum.Resident+sum.Swapped+sum.OutOfRange != sum.Addresses {
		t.Errorf("outcome counts do not add up: %d+%d+%d != %d",
			sum.Resident, sum.Swapped, sum.OutOfRange, sum.Addresses)
	}
}
