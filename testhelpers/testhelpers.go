// Package testhelpers provides utilities for testing PocketBase-based
// pieces of the BOQ processor.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/natchapol2347/boq-app/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create the catalog
// collections. The temporary directory is cleaned up automatically when the
// test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateCatalogItem inserts a master-cost entry into the given catalog
// collection and returns the saved record.
func CreateCatalogItem(t *testing.T, app *pocketbase.PocketBase, collection, code, name string, materialCost, laborCost float64, unit string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collection, err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name", name)
	record.Set("material_cost", materialCost)
	record.Set("labor_cost", laborCost)
	record.Set("total_cost", materialCost+laborCost)
	record.Set("unit", unit)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save catalog item: %v", err)
	}

	return record
}
