package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// CatalogEntry is one master-cost row. TotalUnitCost is always the sum of
// the material and labor unit costs.
type CatalogEntry struct {
	InternalID       string  `json:"internal_id"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	MaterialUnitCost float64 `json:"material_unit_cost"`
	LaborUnitCost    float64 `json:"labor_unit_cost"`
	TotalUnitCost    float64 `json:"total_unit_cost"`
	Unit             string  `json:"unit"`
}

// Catalog is the read-only master-catalog lookup contract. Implementations
// must be side-effect free; the engine treats every call as a synchronous
// read.
type Catalog interface {
	// All returns every entry of a domain's catalog.
	All(domain Domain) ([]CatalogEntry, error)
	// Find returns entries whose code equals the given code exactly.
	Find(domain Domain, code string) ([]CatalogEntry, error)
	// FindByName returns entries whose normalized name equals normalizedName.
	FindByName(domain Domain, normalizedName string) ([]CatalogEntry, error)
}

// CollectionForDomain maps a domain to its catalog collection. The DEFAULT
// domain shares the interior catalog.
func CollectionForDomain(d Domain) string {
	switch d {
	case DomainElectrical:
		return "ee_items"
	case DomainAC:
		return "ac_items"
	case DomainFireProtection:
		return "fp_items"
	default:
		return "interior_items"
	}
}

// RecordCatalog reads master-cost entries from the per-domain PocketBase
// collections.
type RecordCatalog struct {
	app core.App
}

func NewRecordCatalog(app core.App) *RecordCatalog {
	return &RecordCatalog{app: app}
}

func entryFromRecord(r *core.Record) CatalogEntry {
	mat := r.GetFloat("material_cost")
	lab := r.GetFloat("labor_cost")
	return CatalogEntry{
		InternalID:       r.Id,
		Code:             r.GetString("code"),
		Name:             r.GetString("name"),
		MaterialUnitCost: mat,
		LaborUnitCost:    lab,
		TotalUnitCost:    mat + lab,
		Unit:             r.GetString("unit"),
	}
}

func (c *RecordCatalog) All(domain Domain) ([]CatalogEntry, error) {
	records, err := c.app.FindAllRecords(CollectionForDomain(domain))
	if err != nil {
		return nil, &CatalogAccessError{Domain: domain, Err: fmt.Errorf("list records: %w", err)}
	}
	entries := make([]CatalogEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, entryFromRecord(r))
	}
	return entries, nil
}

func (c *RecordCatalog) Find(domain Domain, code string) ([]CatalogEntry, error) {
	records, err := c.app.FindRecordsByFilter(
		CollectionForDomain(domain), "code = {:code}", "", 0, 0, map[string]any{"code": code})
	if err != nil {
		return nil, &CatalogAccessError{Domain: domain, Err: fmt.Errorf("find by code: %w", err)}
	}
	entries := make([]CatalogEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, entryFromRecord(r))
	}
	return entries, nil
}

// FindByName compares normalized names in memory: the normalization (quote
// folding, casefold) has no SQL equivalent worth maintaining.
func (c *RecordCatalog) FindByName(domain Domain, normalizedName string) ([]CatalogEntry, error) {
	all, err := c.All(domain)
	if err != nil {
		return nil, err
	}
	var entries []CatalogEntry
	for _, e := range all {
		if Normalize(e.Name) == normalizedName {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
