// Package services implements the BOQ costing engine: sheet classification,
// line-item extraction, master-catalog matching, cost calculation and
// coordinate-accurate write-back into the source workbook.
package services

import (
	"fmt"
	"strings"
)

// Domain is one of the fixed construction categories. Each domain has its
// own master catalog and its own worksheet column layout.
type Domain string

const (
	DomainInterior       Domain = "interior"
	DomainElectrical     Domain = "electrical"
	DomainAC             Domain = "ac"
	DomainFireProtection Domain = "fire_protection"
	DomainDefault        Domain = "default"
)

// ColumnMap assigns each semantic field to a 1-based worksheet column.
type ColumnMap struct {
	Code         int `json:"code"`
	Name         int `json:"name"`
	Quantity     int `json:"quantity"`
	Unit         int `json:"unit"`
	MaterialCost int `json:"material_cost"`
	LaborCost    int `json:"labor_cost"`
	TotalCost    int `json:"total_cost"`
}

// validate rejects maps that assign two fields to the same column.
func (m ColumnMap) validate() error {
	cols := map[int]string{}
	for _, f := range []struct {
		name string
		col  int
	}{
		{"code", m.Code},
		{"name", m.Name},
		{"quantity", m.Quantity},
		{"unit", m.Unit},
		{"material_cost", m.MaterialCost},
		{"labor_cost", m.LaborCost},
		{"total_cost", m.TotalCost},
	} {
		if f.col < 1 {
			return fmt.Errorf("field %q has invalid column %d", f.name, f.col)
		}
		if other, ok := cols[f.col]; ok {
			return fmt.Errorf("fields %q and %q both mapped to column %d", other, f.name, f.col)
		}
		cols[f.col] = f.name
	}
	return nil
}

// SchemaDescriptor describes one fixed per-domain sheet layout.
// HeaderRow is the 0-based index of the header row; data starts on the row
// below it.
type SchemaDescriptor struct {
	Domain      Domain    `json:"domain"`
	NamePattern string    `json:"name_pattern"`
	HeaderRow   int       `json:"header_row"`
	Columns     ColumnMap `json:"columns"`
}

// Registry holds the ordered schema table. Pattern order matters: the first
// descriptor whose pattern appears in the sheet name wins, and the DEFAULT
// descriptor (empty pattern) catches everything else.
type Registry struct {
	schemas  []SchemaDescriptor
	fallback SchemaDescriptor
}

// NewRegistry builds a registry from an ordered descriptor list. Exactly one
// descriptor must have an empty pattern; it becomes the fallback.
func NewRegistry(schemas ...SchemaDescriptor) (*Registry, error) {
	r := &Registry{}
	haveFallback := false
	for _, s := range schemas {
		if err := s.Columns.validate(); err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.Domain, err)
		}
		if s.HeaderRow < 0 {
			return nil, fmt.Errorf("schema %q: negative header row %d", s.Domain, s.HeaderRow)
		}
		if s.NamePattern == "" {
			if haveFallback {
				return nil, fmt.Errorf("schema %q: duplicate fallback descriptor", s.Domain)
			}
			haveFallback = true
			r.fallback = s
			continue
		}
		r.schemas = append(r.schemas, s)
	}
	if !haveFallback {
		return nil, fmt.Errorf("registry needs a fallback descriptor with no pattern")
	}
	return r, nil
}

// Classify maps a worksheet name to its schema. First case-insensitive
// substring match wins; unmatched names get the fallback. Total: every name
// resolves to some descriptor.
func (r *Registry) Classify(sheetName string) SchemaDescriptor {
	lower := strings.ToLower(sheetName)
	for _, s := range r.schemas {
		if strings.Contains(lower, strings.ToLower(s.NamePattern)) {
			return s
		}
	}
	return r.fallback
}

// Schemas returns the ordered pattern descriptors followed by the fallback.
func (r *Registry) Schemas() []SchemaDescriptor {
	out := make([]SchemaDescriptor, 0, len(r.schemas)+1)
	out = append(out, r.schemas...)
	out = append(out, r.fallback)
	return out
}

// interiorColumns is the classic interior layout: code in B through total in H.
var interiorColumns = ColumnMap{
	Code:         2,
	Name:         3,
	Quantity:     4,
	Unit:         5,
	MaterialCost: 6,
	LaborCost:    7,
	TotalCost:    8,
}

// systemColumns is shared by the electrical, AC and fire-protection layouts,
// which carry unit in F, quantity in G and spread the cost columns to H/J/L.
var systemColumns = ColumnMap{
	Code:         2,
	Name:         3,
	Unit:         6,
	Quantity:     7,
	MaterialCost: 8,
	LaborCost:    10,
	TotalCost:    12,
}

// DefaultRegistry returns the production schema table. Ordering matters:
// "int" before "ee" so a name containing both resolves by position, and the
// patternless interior-shaped fallback comes last.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		SchemaDescriptor{Domain: DomainInterior, NamePattern: "int", HeaderRow: 9, Columns: interiorColumns},
		SchemaDescriptor{Domain: DomainElectrical, NamePattern: "ee", HeaderRow: 7, Columns: systemColumns},
		SchemaDescriptor{Domain: DomainAC, NamePattern: "ac", HeaderRow: 5, Columns: systemColumns},
		SchemaDescriptor{Domain: DomainFireProtection, NamePattern: "fp", HeaderRow: 7, Columns: systemColumns},
		SchemaDescriptor{Domain: DomainDefault, HeaderRow: 9, Columns: interiorColumns},
	)
	if err != nil {
		// The table above is static; a failure here is a programming error.
		panic(err)
	}
	return r
}
