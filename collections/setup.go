// Package collections creates and seeds the per-domain master-cost catalogs.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// CatalogCollections lists the per-domain catalog collections. One catalog
// per domain; they do not cross-reference each other.
var CatalogCollections = []string{
	"interior_items",
	"ee_items",
	"ac_items",
	"fp_items",
}

// Setup programmatically creates/ensures the four master-catalog
// collections. Every catalog shares the same shape: optional code, required
// name, unit costs and a unit of measure.
func Setup(app *pocketbase.PocketBase) {
	for _, name := range CatalogCollections {
		ensureCollection(app, name, func(c *core.Collection) {
			c.Fields.Add(&core.TextField{Name: "code", Required: false})
			c.Fields.Add(&core.TextField{Name: "name", Required: true})
			c.Fields.Add(&core.NumberField{Name: "material_cost", Required: false})
			c.Fields.Add(&core.NumberField{Name: "labor_cost", Required: false})
			c.Fields.Add(&core.NumberField{Name: "total_cost", Required: false})
			c.Fields.Add(&core.TextField{Name: "unit", Required: false})
			c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
			c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		})
	}
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
