package services

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestAbsoluteRow(t *testing.T) {
	tests := []struct {
		name      string
		headerRow int
		itemIndex int
		expect    int
	}{
		{"system sheet first row", 7, 0, 9},
		{"interior sheet first row", 9, 0, 11},
		{"interior sheet later row", 9, 3, 14},
		{"header at top", 0, 0, 2},
		{"deep block", 5, 100, 107},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AbsoluteRow(tt.headerRow, tt.itemIndex); got != tt.expect {
				t.Errorf("AbsoluteRow(%d, %d) = %d, want %d",
					tt.headerRow, tt.itemIndex, got, tt.expect)
			}
		})
	}
}

// newInteriorSheet builds a workbook with one interior-layout sheet whose
// data block starts at Excel row 11 (header row index 9).
func newInteriorSheet(t *testing.T, sheet string) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	set := func(cell string, v any) {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}
	set("B10", "Code")
	set("C10", "Description")
	set("B11", "INT001")
	set("C11", "Ceiling tile")
	set("D11", 10)
	set("E11", "sqm")
	set("B12", "")
	set("C12", "Extra trim work")
	set("D12", 2)
	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("get %s: %v", cell, err)
	}
	return v
}

func TestWriteSheetCosts(t *testing.T) {
	f := newInteriorSheet(t, "INT-1")
	defer f.Close()

	schema := DefaultRegistry().Classify("INT-1")
	items := []LineItem{
		{SourceRowIndex: 0, Code: "INT001", Name: "Ceiling tile", MaterialCost: 500, LaborCost: 200, TotalCost: 910},
		{SourceRowIndex: 1, Name: "Extra trim work", MaterialCost: 0, LaborCost: 0, TotalCost: 0},
	}

	if err := WriteSheetCosts(f, "INT-1", schema, items); err != nil {
		t.Fatalf("WriteSheetCosts() error = %v", err)
	}

	// Costs land on the item's own row: header 9, index 0 -> row 11.
	if got := cellValue(t, f, "INT-1", "F11"); got != "500" {
		t.Errorf("F11 = %q, want 500", got)
	}
	if got := cellValue(t, f, "INT-1", "G11"); got != "200" {
		t.Errorf("G11 = %q, want 200", got)
	}
	if got := cellValue(t, f, "INT-1", "H11"); got != "910" {
		t.Errorf("H11 = %q, want 910", got)
	}
	if got := cellValue(t, f, "INT-1", "H12"); got != "0" {
		t.Errorf("H12 = %q, want 0", got)
	}

	// Non-cost cells on the row are untouched.
	if got := cellValue(t, f, "INT-1", "C11"); got != "Ceiling tile" {
		t.Errorf("C11 = %q, item name must be untouched", got)
	}
	if got := cellValue(t, f, "INT-1", "D11"); got != "10" {
		t.Errorf("D11 = %q, quantity must be untouched", got)
	}

	// The header band stays clean: the historical defect wrote into it.
	for _, cell := range []string{"F10", "G10", "H10", "F9", "G9", "H9"} {
		if got := cellValue(t, f, "INT-1", cell); got != "" {
			t.Errorf("%s = %q, header band must stay empty", cell, got)
		}
	}
}

func TestWriteSheetCostsRounds(t *testing.T) {
	f := newInteriorSheet(t, "INT-1")
	defer f.Close()

	schema := DefaultRegistry().Classify("INT-1")
	items := []LineItem{
		{SourceRowIndex: 0, MaterialCost: 1.005, LaborCost: 2.999, TotalCost: 910.0000000000001},
	}
	if err := WriteSheetCosts(f, "INT-1", schema, items); err != nil {
		t.Fatalf("WriteSheetCosts() error = %v", err)
	}
	if got := cellValue(t, f, "INT-1", "G11"); got != "3" {
		t.Errorf("G11 = %q, want 3", got)
	}
	if got := cellValue(t, f, "INT-1", "H11"); got != "910" {
		t.Errorf("H11 = %q, want 910", got)
	}
}

// One out-of-bounds target aborts the whole sheet before any write.
func TestWriteSheetCostsOutOfBounds(t *testing.T) {
	f := newInteriorSheet(t, "INT-1")
	defer f.Close()

	schema := DefaultRegistry().Classify("INT-1")
	items := []LineItem{
		{SourceRowIndex: 0, MaterialCost: 500, LaborCost: 200, TotalCost: 910},
		{SourceRowIndex: 500, MaterialCost: 1, LaborCost: 1, TotalCost: 2},
	}

	err := WriteSheetCosts(f, "INT-1", schema, items)
	var rie *RowIndexError
	if !errors.As(err, &rie) {
		t.Fatalf("error = %v, want RowIndexError", err)
	}
	if rie.Row != AbsoluteRow(9, 500) {
		t.Errorf("RowIndexError.Row = %d, want %d", rie.Row, AbsoluteRow(9, 500))
	}

	// Atomicity: the valid first item must not have been written either.
	if got := cellValue(t, f, "INT-1", "F11"); got != "" {
		t.Errorf("F11 = %q, sheet write must be all-or-nothing", got)
	}
}
