package paging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.json")
	data := `[
	{"present": true, "modified": false, "frame": 4},
	{"present": false, "modified": true, "frame": 9}
]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := LoadTable(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Table{
		{Present: true, Modified: false, Frame: 4},
		{Present: false, Modified: true, Frame: 9},
	}
	if len(table) != len(want) {
		t.Fatalf("loaded %d entries, want %d", len(table), len(want))
	}
	for i := range want {
		if table[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, table[i], want[i])
		}
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	if _, err := LoadTable(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestReadTableRejectsUnknownFields(t *testing.T) {
	_, err := ReadTable(strings.NewReader(`[{"present": true, "frames": 1}]`))
	if err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestReadTableRejectsEmptyTable(t *testing.T) {
	if _, err := ReadTable(strings.NewReader(`[]`)); err == nil {
		t.Fatal("expected an error for an empty table")
	}
}

func TestReadTableRejectsMalformedJSON(t *testing.T) {
	if _, err := ReadTable(strings.NewReader(`[{"present": true`)); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
