package collections_test

import (
	"testing"

	"github.com/natchapol2347/boq-app/collections"
	"github.com/natchapol2347/boq-app/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	wantCounts := map[string]int{
		"interior_items": 10,
		"ee_items":       7,
		"ac_items":       6,
		"fp_items":       6,
	}
	for colName, want := range wantCounts {
		records, err := app.FindAllRecords(colName)
		if err != nil {
			t.Fatalf("query %s error: %v", colName, err)
		}
		if len(records) != want {
			t.Errorf("%s: expected %d seeded items, got %d", colName, want, len(records))
		}
	}
}

func TestSeed_TotalCostIsSum(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	records, err := app.FindRecordsByFilter(
		"interior_items",
		"code = {:c}",
		"", 1, 0,
		map[string]any{"c": "INT001"},
	)
	if err != nil || len(records) == 0 {
		t.Fatalf("INT001 not found after seed: %v", err)
	}

	r := records[0]
	if r.GetString("name") != "Painting - Interior Wall" {
		t.Errorf("name = %q, want %q", r.GetString("name"), "Painting - Interior Wall")
	}
	want := r.GetFloat("material_cost") + r.GetFloat("labor_cost")
	if r.GetFloat("total_cost") != want {
		t.Errorf("total_cost = %v, want %v", r.GetFloat("total_cost"), want)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	records, err := app.FindAllRecords("interior_items")
	if err != nil {
		t.Fatalf("query interior_items error: %v", err)
	}
	if len(records) != 10 {
		t.Errorf("expected 10 interior items after idempotent seed, got %d", len(records))
	}
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Pre-populate one catalog; Seed must leave it alone but still fill
	// the empty ones.
	testhelpers.CreateCatalogItem(t, app, "interior_items", "CUSTOM1", "Custom Finish", 99, 11, "SQM")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	interior, _ := app.FindAllRecords("interior_items")
	if len(interior) != 1 {
		t.Errorf("expected 1 interior item (pre-existing only), got %d", len(interior))
	}
	if len(interior) > 0 && interior[0].GetString("code") != "CUSTOM1" {
		t.Errorf("expected pre-existing item, got %q", interior[0].GetString("code"))
	}

	ee, _ := app.FindAllRecords("ee_items")
	if len(ee) != 7 {
		t.Errorf("expected ee_items to still be seeded, got %d", len(ee))
	}
}
