package tabular

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeValue coerces one cell to its canonical form: Unicode NFC with
// surrounding whitespace trimmed. Spreadsheet exports frequently mix composed
// and decomposed accents for the same visible text; NFC makes them compare
// equal.
func NormalizeValue(v string) string {
	return norm.NFC.String(strings.TrimSpace(v))
}

// Normalize returns a copy of the table with every cell normalized and every
// declared column present in every row. This eliminates missing-value
// inconsistencies before any comparison logic runs.
func Normalize(t *Table) *Table {
	out := &Table{Name: t.Name, Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([]Row, 0, len(t.Rows))

	for _, row := range t.Rows {
		clean := NewRow(row.Sheet)
		for _, col := range t.Columns {
			clean.Cells[col] = NormalizeValue(row.Get(col))
		}
		out.Rows = append(out.Rows, clean)
	}
	return out
}

// NormalizeAll normalizes a sequence of tables, preserving their order.
func NormalizeAll(tables []*Table) []*Table {
	out := make([]*Table, 0, len(tables))
	for _, t := range tables {
		out = append(out, Normalize(t))
	}
	return out
}
