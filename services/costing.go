package services

import "fmt"

// MarkupTable maps a percentage key to its multiplier (the key divided by
// 100). A processing run selects exactly one multiplier and applies it
// uniformly to every matched item's total.
type MarkupTable map[int]float64

// DefaultMarkupTable returns the standard markup options.
func DefaultMarkupTable() MarkupTable {
	return MarkupTable{
		100: 1.00,
		130: 1.30,
		150: 1.50,
		50:  0.50,
		30:  0.30,
	}
}

// Multiplier resolves a configured percentage to its multiplier.
func (t MarkupTable) Multiplier(pct int) (float64, error) {
	m, ok := t[pct]
	if !ok {
		return 0, fmt.Errorf("markup percentage %d not configured", pct)
	}
	return m, nil
}

// CostItem computes material, labor and marked-up total cost for one item.
// Matched items: material = qty x material unit, labor = qty x labor unit,
// total = (material + labor) x multiplier. Unmatched items get all zeros.
// No rounding happens here; values are rounded once at the cell write.
func CostItem(item *LineItem, entry *CatalogEntry, multiplier float64) error {
	if item.Quantity < 0 {
		return &ValidationError{
			Row:     item.SourceRowIndex,
			Field:   "quantity",
			Message: fmt.Sprintf("negative quantity %v", item.Quantity),
		}
	}

	if entry == nil {
		item.MaterialCost = 0
		item.LaborCost = 0
		item.TotalCost = 0
		return nil
	}

	item.MaterialCost = item.Quantity * entry.MaterialUnitCost
	item.LaborCost = item.Quantity * entry.LaborUnitCost
	item.TotalCost = (item.MaterialCost + item.LaborCost) * multiplier
	return nil
}
