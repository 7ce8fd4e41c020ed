package paging

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// LoadTable reads a page table from a JSON file: an array of entries
// of the form {"present":true,"modified":false,"frame":9}, indexed by
// page number.
func LoadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table file: %v", err)
	}
	defer f.Close()
	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return t, nil
}

// ReadTable decodes a JSON page table from r. Entries with unknown
// fields are rejected, as is an empty table.
func ReadTable(r io.Reader) (Table, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var t Table
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding table: %v", err)
	}
	if len(t) == 0 {
		return nil, errors.New("table has no entries")
	}
	return t, nil
}
