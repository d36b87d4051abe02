// Package excel is the spreadsheet boundary of maprecon: it parses xlsx
// workbooks into tabular structures and renders reconciliation results back
// into a styled multi-sheet report. The reconciliation engine itself never
// touches a file.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"maprecon/pkg/constants"
	"maprecon/pkg/errors"
	"maprecon/pkg/logging"
	"maprecon/pkg/tabular"
)

// Reader parses xlsx workbooks into tables.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Workbook reads every sheet of the workbook at path into a table, in sheet
// order. The first row of each sheet is the header; rows are padded so every
// declared column has a cell. Sheets without a header row are skipped.
func (r *Reader) Workbook(ctx context.Context, path string) ([]*tabular.Table, error) {
	log := logging.FromContext(ctx)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Warn().Err(cerr).Str("workbook", path).Msg("Failed to close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewIOError("read", path, errors.ErrEmptyWorkbook)
	}

	var tables []*tabular.Table
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, errors.WrapParse("xlsx", path, err)
		}
		if len(rows) == 0 {
			log.Debug().Str("workbook", path).Str("sheet", sheet).Msg("Skipping empty sheet")
			continue
		}

		table := buildTable(sheet, rows)
		log.Debug().
			Str("workbook", path).
			Str("sheet", sheet).
			Int("rows", len(table.Rows)).
			Int("columns", len(table.Columns)).
			Msg("Parsed sheet")
		tables = append(tables, table)
	}

	if len(tables) == 0 {
		return nil, errors.NewIOError("read", path, errors.ErrEmptyWorkbook)
	}

	return tables, nil
}

// buildTable converts one sheet's raw cell grid into a table. Header cells
// that are blank get a placeholder name so downstream comparison can exclude
// them by prefix.
func buildTable(sheet string, rows [][]string) *tabular.Table {
	header := rows[0]
	columns := make([]string, len(header))
	for i, h := range header {
		name := tabular.NormalizeValue(h)
		if name == "" {
			name = fmt.Sprintf("%s: %d", constants.PlaceholderColumnPrefix, i)
		}
		columns[i] = name
	}

	t := &tabular.Table{Name: sheet, Columns: columns}
	for _, cells := range rows[1:] {
		row := tabular.NewRow(sheet)
		for i, col := range columns {
			if i < len(cells) {
				row.Set(col, cells[i])
			} else {
				row.Set(col, "")
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
