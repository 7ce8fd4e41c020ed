package paging

const (
	pageSetTopBits  = 8
	pageSetLeafBits = 12
)

type pageSetLeaf [(1 << pageSetLeafBits) / 64]uint64

// A PageSet tracks which virtual page numbers have been observed. The
// zero value is an empty set, ready to use.
//
// The set is a lazily allocated two-level radix sized for the 20-bit
// page space of ThreeLevel: the top bits of a page number select a
// leaf bitmap, allocated on first touch, so a trace that references
// few pages allocates few leaves. Page numbers wider than 20 bits
// wrap.
type PageSet struct {
	leaves [1 << pageSetTopBits]*pageSetLeaf
}

// Add adds a page number to the set.
//
// Returns true if the page was not already in the set.
func (s *PageSet) Add(page uint64) bool {
	leaf := &s.leaves[(page>>pageSetLeafBits)&(1<<pageSetTopBits-1)]
	if *leaf == nil {
		*leaf = new(pageSetLeaf)
	}
	bit := page & (1<<pageSetLeafBits - 1)
	word, mask := bit/64, uint64(1)<<(bit%64)
	if (*leaf)[word]&mask != 0 {
		return false
	}
	(*leaf)[word] |= mask
	return true
}
