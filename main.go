package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/natchapol2347/boq-app/collections"
	"github.com/natchapol2347/boq-app/handlers"
	"github.com/natchapol2347/boq-app/services"
)

func main() {
	app := pocketbase.New()

	// Create catalog collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		proc := &services.Processor{
			Catalog:  services.NewRecordCatalog(app),
			Registry: services.DefaultRegistry(),
			Matching: services.DefaultMatchConfig(),
			Markups:  services.DefaultMarkupTable(),
			Summary:  services.DefaultSummaryLayout(),
		}
		store := services.NewSessionStore()

		// ── BOQ processing pipeline ──────────────────────────────
		se.Router.POST("/api/process-boq", handlers.HandleProcessBOQ(proc, store))
		se.Router.POST("/api/generate-final-boq", handlers.HandleGenerateFinalBOQ(proc, store))
		se.Router.GET("/api/download/{id}", handlers.HandleDownload(store))
		se.Router.POST("/api/cleanup-session", handlers.HandleCleanupSession(store))

		// ── Master catalog (read-only) ───────────────────────────
		se.Router.GET("/api/catalog/{domain}", handlers.HandleCatalogList(proc.Catalog))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
