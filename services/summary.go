package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellRef addresses a single worksheet cell (1-based).
type CellRef struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// SummaryLayout fixes where each domain's grand total lands on the summary
// sheet. The positions are configuration, not derived from the schemas.
type SummaryLayout struct {
	// SheetPattern selects the summary sheet by case-insensitive substring.
	SheetPattern string             `json:"sheet_pattern"`
	Cells        map[Domain]CellRef `json:"cells"`
}

// DefaultSummaryLayout writes the four domain totals into column B of the
// "sum" sheet, one row per domain.
func DefaultSummaryLayout() *SummaryLayout {
	return &SummaryLayout{
		SheetPattern: "sum",
		Cells: map[Domain]CellRef{
			DomainInterior:       {Col: 2, Row: 3},
			DomainElectrical:     {Col: 2, Row: 4},
			DomainAC:             {Col: 2, Row: 5},
			DomainFireProtection: {Col: 2, Row: 6},
		},
	}
}

// IsSummarySheet reports whether a sheet name selects the summary sheet.
func (l *SummaryLayout) IsSummarySheet(sheetName string) bool {
	return strings.Contains(strings.ToLower(sheetName), strings.ToLower(l.SheetPattern))
}

// WriteSummary rolls each domain's per-sheet totals into its fixed summary
// cell. It runs only after every constituent sheet has been costed; a sheet
// that failed contributes 0 and is logged rather than aborting the summary.
// A workbook without a summary sheet is not an error.
func WriteSummary(f *excelize.File, layout *SummaryLayout, results []SheetResult) error {
	var summarySheet string
	for _, name := range f.GetSheetList() {
		if layout.IsSummarySheet(name) {
			summarySheet = name
			break
		}
	}
	if summarySheet == "" {
		log.Printf("summary: no sheet matches pattern %q, skipping", layout.SheetPattern)
		return nil
	}

	totals := make(map[Domain]float64, len(layout.Cells))
	for _, res := range results {
		if res.Err != nil {
			log.Printf("summary: sheet %q failed (%v), contributes 0", res.Sheet, res.Err)
			continue
		}
		for _, item := range res.Items {
			totals[res.Domain] += item.TotalCost
		}
	}

	for domain, ref := range layout.Cells {
		cell, err := excelize.CoordinatesToCellName(ref.Col, ref.Row)
		if err != nil {
			return fmt.Errorf("summary cell for %q: %w", domain, err)
		}
		if err := f.SetCellValue(summarySheet, cell, round2(totals[domain])); err != nil {
			return fmt.Errorf("write summary cell %s: %w", cell, err)
		}
	}
	return nil
}
