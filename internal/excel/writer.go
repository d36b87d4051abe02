package excel

import (
	"context"
	"strings"

	"github.com/xuri/excelize/v2"

	"maprecon/pkg/constants"
	"maprecon/pkg/dataset"
	"maprecon/pkg/errors"
	"maprecon/pkg/logging"
	"maprecon/pkg/reconcile"
	"maprecon/pkg/tabular"
)

// Writer renders a reconciliation result into a multi-sheet xlsx report.
type Writer struct{}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// diffHeader is the header row of the Differences sheet.
var diffHeader = []string{
	constants.HierarchyPathColumn,
	constants.DefaultTagColumn,
	"Column",
	"Test Value",
	"Source Value",
	"Change Type",
}

// Report writes the full report workbook: the original source sheets, the
// stripped source view, the merged output, and the styled differences sheet.
func (w *Writer) Report(ctx context.Context, path string, sourceSheets []*tabular.Table, source *dataset.Dataset, result *reconcile.Result) error {
	log := logging.FromContext(ctx)

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Failed to close report workbook")
		}
	}()

	written := make(map[string]bool, len(sourceSheets))
	for _, t := range sourceSheets {
		name := sourceSheetName(t.Name)
		if err := writeTable(f, t, name); err != nil {
			return err
		}
		written[sheetName(name)] = true
	}

	stripped := source.Table(constants.StrippedSourceSheet).
		DropColumns(constants.HierarchyPathColumn, constants.ParentChildKeyColumn)
	if err := writeTable(f, stripped, constants.StrippedSourceSheet); err != nil {
		return err
	}

	if err := writeTable(f, result.Reconciled, constants.MergedOutputSheet); err != nil {
		return err
	}

	if result.HasDifferences() {
		if err := writeDifferences(f, result.Differences); err != nil {
			return err
		}
	}

	// Drop the default sheet excelize creates with every new workbook, unless
	// a source sheet carries that name and already wrote its rows into it.
	if !written["Sheet1"] {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("write", path, err)
	}

	log.Info().
		Str("report", path).
		Int("differences", len(result.Differences)).
		Msg("Report written")
	return nil
}

// writeTable writes one table to the named sheet, scrubbing cell values of
// carriage-return artifacts.
func writeTable(f *excelize.File, t *tabular.Table, name string) error {
	sheet := sheetName(name)
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.WrapIO("create", sheet, err)
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cells := make([]any, len(t.Columns))
		for j, col := range t.Columns {
			cells[j] = scrub(row.Get(col))
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

// writeDifferences writes the differences sheet with a background fill per
// change type.
func writeDifferences(f *excelize.File, diffs []reconcile.Difference) error {
	sheet := constants.DifferencesSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.WrapIO("create", sheet, err)
	}

	header := make([]any, len(diffHeader))
	for i, h := range diffHeader {
		header[i] = h
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	for i, d := range diffs {
		rowNum := i + 2
		cells := []any{d.Path, d.Tag, d.Column, scrub(d.TestValue), scrub(d.SourceValue), string(d.Type)}
		if err := setRow(f, sheet, rowNum, cells); err != nil {
			return err
		}

		if styleID, ok := styles[d.Type.Style()]; ok {
			first, _ := excelize.CoordinatesToCellName(1, rowNum)
			last, _ := excelize.CoordinatesToCellName(len(cells), rowNum)
			if err := f.SetCellStyle(sheet, first, last, styleID); err != nil {
				return errors.WrapIO("style", sheet, err)
			}
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return errors.WrapIO("write", sheet, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return errors.WrapIO("write", sheet, err)
	}
	return nil
}

// reservedSheets are the names the report itself writes. A source sheet
// carrying one of them is renamed so the report sheets do not overwrite it.
var reservedSheets = map[string]bool{
	constants.StrippedSourceSheet: true,
	constants.MergedOutputSheet:   true,
	constants.DifferencesSheet:    true,
}

// sourceSheetName returns the report sheet name for a source sheet, renaming
// it when it collides with a reserved report sheet.
func sourceSheetName(name string) string {
	if reservedSheets[name] {
		return name + " (Source)"
	}
	return name
}

// sheetName truncates a name to the xlsx sheet-name limit.
func sheetName(name string) string {
	runes := []rune(name)
	if len(runes) > constants.MaxSheetNameLength {
		return string(runes[:constants.MaxSheetNameLength])
	}
	return name
}

// scrub replaces the carriage-return artifacts Excel embeds in exported cells
// with plain spaces so the report renders on one line.
var scrubber = strings.NewReplacer("_x000D_", " ", "\r", " ", "\n", " ")

func scrub(v string) string {
	return scrubber.Replace(v)
}
