// Package tabular defines the row and table model shared by the reconciliation
// pipeline. Rows are ordered; order is significant and must be preserved, as
// it is the only way the tree structure of a mapping sheet is recoverable.
package tabular

import (
	"strings"

	"maprecon/pkg/constants"
)

// Row is one record from an input table: an open-ended mapping from column
// name to string value. A missing cell and an empty cell are equivalent once
// the row has been normalized.
type Row struct {
	// Sheet is the name of the sheet the row came from.
	Sheet string

	// Cells maps column name to cell value.
	Cells map[string]string
}

// NewRow creates an empty row for the given sheet.
func NewRow(sheet string) Row {
	return Row{Sheet: sheet, Cells: make(map[string]string)}
}

// Get returns the value of the named cell, or "" when absent.
func (r Row) Get(column string) string {
	return r.Cells[column]
}

// Set assigns the value of the named cell.
func (r Row) Set(column, value string) {
	r.Cells[column] = value
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	cells := make(map[string]string, len(r.Cells))
	for k, v := range r.Cells {
		cells[k] = v
	}
	return Row{Sheet: r.Sheet, Cells: cells}
}

// Table is an ordered collection of rows sharing one column set. Columns keep
// their spreadsheet order so exported output matches the input layout.
type Table struct {
	// Name is the sheet name the table was read from.
	Name string

	// Columns is the ordered header row.
	Columns []string

	// Rows are the data rows in input order.
	Rows []Row
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column to the table's header if not already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// DropColumns returns a copy of the table without the named columns. Cell
// values for dropped columns are removed from every row.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	out := &Table{Name: t.Name}
	for _, c := range t.Columns {
		if !drop[c] {
			out.Columns = append(out.Columns, c)
		}
	}
	for _, row := range t.Rows {
		clone := row.Clone()
		for n := range drop {
			delete(clone.Cells, n)
		}
		out.Rows = append(out.Rows, clone)
	}
	return out
}

// IsPlaceholderColumn reports whether a column name marks a spreadsheet
// artifact (an unnamed filler column) that must be excluded from comparison.
func IsPlaceholderColumn(name string) bool {
	return strings.HasPrefix(name, constants.PlaceholderColumnPrefix)
}
