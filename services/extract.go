package services

import (
	"fmt"
	"strconv"
	"strings"
)

// LineItem is a single billable row extracted from a BOQ sheet.
// SourceRowIndex is the 0-based offset of the raw row within the data block
// (the rows below the header), not the absolute worksheet row. Skipped rows
// still advance it, so write-back arithmetic stays exact.
type LineItem struct {
	SourceRowIndex int     `json:"source_row_index"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`

	// Filled in by matching and costing.
	Matched      bool    `json:"matched"`
	Similarity   float64 `json:"similarity"`
	CatalogID    string  `json:"catalog_id,omitempty"`
	MaterialCost float64 `json:"material_cost"`
	LaborCost    float64 `json:"labor_cost"`
	TotalCost    float64 `json:"total_cost"`
}

// IsSubItem reports whether the item is a dependent sub-item: no code of its
// own, but a name. Sub-items are billed independently.
func (li LineItem) IsSubItem() bool { return li.Code == "" && li.Name != "" }

// skipKeywords mark section-total rows that are not line items. Only the
// two total markers qualify; broader words like "sum" appear inside
// legitimate item names ("Gypsum") and must not skip anything.
var skipKeywords = []string{"total", "รวม"}

func isSkipRow(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range skipKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// cellAt returns the trimmed value of the 1-based column in a raw row, or ""
// when the row is too short (trailing empty cells are not materialized).
func cellAt(row []string, col int) string {
	idx := col - 1
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseQuantity coerces a cell to a float64. Empty or non-numeric values
// become 0 (soft failure, reported as a warning by the caller). Thousand
// separators are tolerated.
func parseQuantity(raw string) (float64, bool) {
	if raw == "" {
		return 0, true
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExtractLineItems reads the data block under the schema's header row into
// LineItems. Extraction stops at the first fully blank row (no code and no
// name); there is no lookahead past it. Section-total rows are dropped but
// keep their slot in the row numbering. A row with a negative quantity is
// skipped with a ValidationError warning.
func ExtractLineItems(rows [][]string, schema SchemaDescriptor) ([]LineItem, []ValidationError, error) {
	dataStart := schema.HeaderRow + 1
	if len(rows) <= schema.HeaderRow {
		return nil, nil, &SheetFormatError{
			Reason: fmt.Sprintf("expected header at row %d but sheet has only %d rows", schema.HeaderRow+1, len(rows)),
		}
	}

	var items []LineItem
	var warnings []ValidationError

	for offset := 0; dataStart+offset < len(rows); offset++ {
		row := rows[dataStart+offset]

		code := cellAt(row, schema.Columns.Code)
		name := cellAt(row, schema.Columns.Name)

		// Fully blank row terminates the block.
		if code == "" && name == "" {
			break
		}

		if isSkipRow(name) {
			continue
		}

		qtyRaw := cellAt(row, schema.Columns.Quantity)
		qty, ok := parseQuantity(qtyRaw)
		if !ok {
			warnings = append(warnings, ValidationError{
				Row:     offset,
				Field:   "quantity",
				Message: fmt.Sprintf("non-numeric quantity %q, defaulted to 0", qtyRaw),
			})
		}
		if qty < 0 {
			warnings = append(warnings, ValidationError{
				Row:     offset,
				Field:   "quantity",
				Message: fmt.Sprintf("negative quantity %v, row skipped", qty),
			})
			continue
		}

		items = append(items, LineItem{
			SourceRowIndex: offset,
			Code:           code,
			Name:           name,
			Quantity:       qty,
			Unit:           cellAt(row, schema.Columns.Unit),
		})
	}

	return items, warnings, nil
}
