// Package source reads the tabular residency-program source files
// (spreadsheets and CSVs) into a uniform row representation.
//
// Header names are trimmed of surrounding whitespace, unnamed index
// artifact columns are dropped, and blank cells become nil so that
// absence propagates instead of placeholder strings.
package source

import (
	"fmt"
	"strings"
)

// Row is one record of a tabular source. Cell values are nil when the
// source cell was blank.
type Row map[string]*string

// Get returns the cell for the named column, or nil when the cell is
// blank or the column does not exist.
func (r Row) Get(name string) *string {
	return r[name]
}

// Table is an ordered set of rows sharing one header.
type Table struct {
	Columns []string
	Rows    []Row
}

// NotFoundError is returned when a required source file is missing.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("source file not found: %s", e.Path)
}

// buildTable assembles a Table from a raw header and cell grid, applying
// the shared cleanup rules. Outside pandas the unnamed index artifact
// surfaces as an empty header cell, so empty header names are dropped.
func buildTable(header []string, records [][]string) *Table {
	type col struct {
		name string
		idx  int
	}
	var cols []col
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" || name == "Unnamed: 0" {
			continue
		}
		cols = append(cols, col{name: name, idx: i})
	}

	t := &Table{Columns: make([]string, 0, len(cols))}
	for _, c := range cols {
		t.Columns = append(t.Columns, c.name)
	}

	for _, rec := range records {
		row := make(Row, len(cols))
		for _, c := range cols {
			var cell string
			if c.idx < len(rec) {
				cell = rec[c.idx]
			}
			if cell == "" {
				row[c.name] = nil
				continue
			}
			v := cell
			row[c.name] = &v
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
