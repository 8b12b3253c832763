package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// table is a loaded CSV file with header-indexed column access. Column
// lookup by name keeps the importer robust against column reordering in the
// source files.
type table struct {
	cols map[string]int
	rows [][]string
}

func loadTable(path string, required ...string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file, expected a header row", path)
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[name] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", path, name)
		}
	}
	return &table{cols: cols, rows: records[1:]}, nil
}

// get returns the named column of a row, or "" when the row is short.
func (t *table) get(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// getInt parses the named column as an integer, returning 0 for empty or
// unparseable values, the way the source files encode absent numerics.
func (t *table) getInt(row []string, col string) int {
	n, err := strconv.Atoi(t.get(row, col))
	if err != nil {
		return 0
	}
	return n
}
