package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"github.com/natchapol2347/boq-app/services"
)

var knownDomains = map[services.Domain]bool{
	services.DomainInterior:       true,
	services.DomainElectrical:     true,
	services.DomainAC:             true,
	services.DomainFireProtection: true,
}

// HandleCatalogList returns a handler that lists a domain's master-catalog
// entries. Read-only; catalog editing belongs to the admin surface, not this
// core.
func HandleCatalogList(catalog services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		domain := services.Domain(e.Request.PathValue("domain"))
		if !knownDomains[domain] {
			return e.JSON(http.StatusNotFound, map[string]any{
				"success": false, "error": "unknown domain",
			})
		}

		entries, err := catalog.All(domain)
		if err != nil {
			log.Printf("catalog_list: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{
				"success": false, "error": "catalog lookup failed",
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"success": true,
			"domain":  domain,
			"items":   entries,
		})
	}
}
