package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type itemDef struct {
	code         string
	name         string
	materialCost float64
	laborCost    float64
	unit         string
}

// seedItems holds the starter master data used when a catalog is empty and
// no master workbook has been imported yet.
var seedItems = map[string][]itemDef{
	"interior_items": {
		{"INT001", "Painting - Interior Wall", 150, 100, "SQM"},
		{"INT002", "Tile Installation - Floor", 300, 200, "SQM"},
		{"INT003", "Ceiling Installation - Gypsum", 250, 150, "SQM"},
		{"INT004", "Door Installation - Wooden", 800, 400, "EA"},
		{"INT005", "Window Installation - Aluminum", 600, 300, "EA"},
		{"INT006", "Flooring - Laminate", 400, 100, "SQM"},
		{"INT007", "Cabinet Installation - Kitchen", 1200, 800, "EA"},
		{"INT008", "Partition - Drywall", 200, 120, "SQM"},
		{"INT009", "Molding - Decorative", 80, 40, "LM"},
		{"INT010", "Lighting Fixture - Ceiling", 350, 150, "EA"},
	},
	"ee_items": {
		{"EE001", "Wiring - THW 2.5 sqmm", 25, 15, "M"},
		{"EE002", "Conduit - EMT 1/2 inch", 40, 20, "M"},
		{"EE003", "Outlet - Duplex Receptacle", 120, 80, "EA"},
		{"EE004", "Switch - Single Gang", 100, 60, "EA"},
		{"EE005", "Panel Board - 12 Circuit", 4500, 1500, "EA"},
		{"EE006", "Breaker - 20A Single Pole", 350, 100, "EA"},
		{"EE007", "Light Fixture - LED Downlight", 450, 150, "EA"},
	},
	"ac_items": {
		{"AC001", "Split Type 12000 BTU - Wall Mounted", 18000, 3500, "SET"},
		{"AC002", "Split Type 24000 BTU - Wall Mounted", 32000, 4500, "SET"},
		{"AC003", "Refrigerant Pipe - 1/4 + 1/2 inch", 350, 150, "M"},
		{"AC004", "Drain Pipe - PVC 3/4 inch", 60, 40, "M"},
		{"AC005", "Ventilation Fan - Ceiling Mounted", 1800, 600, "EA"},
		{"AC006", "Duct - Galvanized Sheet", 450, 250, "SQM"},
	},
	"fp_items": {
		{"FP001", "Sprinkler Head - Pendent Type", 280, 120, "EA"},
		{"FP002", "Fire Pipe - Black Steel 2 inch", 420, 180, "M"},
		{"FP003", "Fire Extinguisher - Dry Chemical 10 lbs", 1200, 200, "EA"},
		{"FP004", "Fire Alarm Bell - 6 inch", 850, 300, "EA"},
		{"FP005", "Smoke Detector - Photoelectric", 950, 250, "EA"},
		{"FP006", "Fire Hose Cabinet - Recessed", 5500, 1500, "EA"},
	},
}

// Seed inserts the starter master data into every catalog collection that is
// still empty. Already-populated catalogs are left alone.
func Seed(app *pocketbase.PocketBase) error {
	for _, colName := range CatalogCollections {
		col, err := app.FindCollectionByNameOrId(colName)
		if err != nil {
			return fmt.Errorf("seed: could not find %s collection: %w", colName, err)
		}

		existing, err := app.FindAllRecords(col)
		if err != nil {
			return fmt.Errorf("seed: could not query %s: %w", colName, err)
		}
		if len(existing) > 0 {
			continue // already seeded
		}

		log.Printf("seed: %s is empty, inserting sample master data", colName)
		for _, def := range seedItems[colName] {
			record := core.NewRecord(col)
			record.Set("code", def.code)
			record.Set("name", def.name)
			record.Set("material_cost", def.materialCost)
			record.Set("labor_cost", def.laborCost)
			record.Set("total_cost", def.materialCost+def.laborCost)
			record.Set("unit", def.unit)
			if err := app.Save(record); err != nil {
				return fmt.Errorf("seed: could not save %s item %q: %w", colName, def.name, err)
			}
		}
	}
	return nil
}
