package services

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
)

// AbsoluteRow converts a schema's 0-based header row and an item's 0-based
// block offset into the 1-based worksheet row the item lives on:
// one +1 to step past the header row itself, one +1 for the 1-based
// numbering. For headerRow=7 and itemIndex=0 the target is row 9.
//
// Every write site goes through this function; the arithmetic exists
// nowhere else.
func AbsoluteRow(headerRow, itemIndex int) int {
	return headerRow + itemIndex + 2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WriteSheetCosts writes the three computed cost cells of every item back to
// its source row. Only the cost columns of the schema are touched; all other
// content, formulas and styling stay as they are.
//
// The write is all-or-nothing per sheet: every target row is validated
// against the worksheet bounds first, and a single out-of-bounds target
// aborts with a RowIndexError before any cell is written.
func WriteSheetCosts(f *excelize.File, sheet string, schema SchemaDescriptor, items []LineItem) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q bounds: %w", sheet, err)
	}
	maxRow := len(rows)

	for _, item := range items {
		if target := AbsoluteRow(schema.HeaderRow, item.SourceRowIndex); target < 1 || target > maxRow {
			return &RowIndexError{Sheet: sheet, Row: target, MaxRow: maxRow}
		}
	}

	for _, item := range items {
		target := AbsoluteRow(schema.HeaderRow, item.SourceRowIndex)
		for _, cell := range []struct {
			col int
			val float64
		}{
			{schema.Columns.MaterialCost, item.MaterialCost},
			{schema.Columns.LaborCost, item.LaborCost},
			{schema.Columns.TotalCost, item.TotalCost},
		} {
			ref, err := excelize.CoordinatesToCellName(cell.col, target)
			if err != nil {
				return fmt.Errorf("cell reference (%d,%d): %w", cell.col, target, err)
			}
			if err := f.SetCellValue(sheet, ref, round2(cell.val)); err != nil {
				return fmt.Errorf("write cell %s on %q: %w", ref, sheet, err)
			}
		}
	}
	return nil
}
