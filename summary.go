package paging

import "errors"

// A Summary accumulates the outcomes of a batch of translations. The
// zero value is ready to use. All counts are in addresses.
type Summary struct {
	// Addresses is the total number of addresses observed.
	Addresses uint64

	// Resident counts addresses that translated to a physical
	// address.
	Resident uint64

	// Swapped counts addresses whose page had its presence bit
	// clear.
	Swapped uint64

	// OutOfRange counts addresses whose page number fell past the
	// end of the table.
	OutOfRange uint64

	// DistinctPages counts distinct page numbers among the observed
	// addresses.
	DistinctPages uint64

	pages PageSet
}

// Observe records one translation outcome: the page number an address
// referenced and the error Translate returned for it, nil on success.
func (s *Summary) Observe(page uint64, err error) {
	s.Addresses++
	if s.pages.Add(page) {
		s.DistinctPages++
	}
	switch {
	case err == nil:
		s.Resident++
	case errors.Is(err, ErrPageNotResident):
		s.Swapped++
	case errors.Is(err, ErrPageOutOfRange):
		s.OutOfRange++
	}
}
