package excel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"maprecon/pkg/errors"
	"maprecon/pkg/logging"
)

// testCtx returns a context whose logger discards everything, keeping test
// output clean.
func testCtx() context.Context {
	return logging.WithLogger(context.Background(), logging.NewNopLogger())
}

// writeWorkbook creates a single-sheet xlsx file from a grid of raw cell
// values, with the first row as header.
func writeWorkbook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &cells))
	}

	path := filepath.Join(t.TempDir(), "workbook.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestWorkbookReadsSheets(t *testing.T) {
	path := writeWorkbook(t, "MX Mapping", [][]string{
		{"Lvl", "XML Tag", "Name", "Value"},
		{"0", "Doc", "Document", "1"},
		{"1", "Hdr", "Header", "2"},
	})

	tables, err := NewReader().Workbook(testCtx(), path)
	require.NoError(t, err)
	require.Len(t, tables, 1)

	table := tables[0]
	assert.Equal(t, "MX Mapping", table.Name)
	assert.Equal(t, []string{"Lvl", "XML Tag", "Name", "Value"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Doc", table.Rows[0].Get("XML Tag"))
	assert.Equal(t, "Header", table.Rows[1].Get("Name"))
}

func TestWorkbookBlankHeadersGetPlaceholders(t *testing.T) {
	path := writeWorkbook(t, "Sheet", [][]string{
		{"Lvl", "", "Name"},
		{"0", "stray", "Root"},
	})

	tables, err := NewReader().Workbook(testCtx(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Lvl", "Unnamed: 1", "Name"}, tables[0].Columns)
	assert.Equal(t, "stray", tables[0].Rows[0].Get("Unnamed: 1"))
}

func TestWorkbookPadsShortRows(t *testing.T) {
	path := writeWorkbook(t, "Sheet", [][]string{
		{"Lvl", "XML Tag", "Name", "Value"},
		{"0", "A"},
	})

	tables, err := NewReader().Workbook(testCtx(), path)
	require.NoError(t, err)

	row := tables[0].Rows[0]
	assert.Equal(t, "", row.Get("Name"))
	assert.Equal(t, "", row.Get("Value"))
}

func TestWorkbookEmptyIsAnError(t *testing.T) {
	f := excelize.NewFile()
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := NewReader().Workbook(testCtx(), path)
	assert.True(t, errors.Is(err, errors.ErrEmptyWorkbook))
}

func TestWorkbookMissingFile(t *testing.T) {
	_, err := NewReader().Workbook(testCtx(), filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)

	var ioErr *errors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "open", ioErr.Operation)
}
