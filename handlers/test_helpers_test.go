package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"

	"github.com/natchapol2347/boq-app/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// testProcessor wires the engine against an in-memory catalog so handler
// tests need no PocketBase instance.
func testProcessor() *services.Processor {
	return &services.Processor{
		Catalog:  memoryCatalog(),
		Registry: services.DefaultRegistry(),
		Matching: services.DefaultMatchConfig(),
		Markups:  services.DefaultMarkupTable(),
		Summary:  services.DefaultSummaryLayout(),
	}
}

type staticCatalog struct {
	entries map[services.Domain][]services.CatalogEntry
}

func (c *staticCatalog) All(domain services.Domain) ([]services.CatalogEntry, error) {
	return c.entries[domain], nil
}

func (c *staticCatalog) Find(domain services.Domain, code string) ([]services.CatalogEntry, error) {
	var out []services.CatalogEntry
	for _, e := range c.entries[domain] {
		if e.Code == code {
			out = append(out, e)
		}
	}
	return out, nil
}

func (c *staticCatalog) FindByName(domain services.Domain, normalizedName string) ([]services.CatalogEntry, error) {
	var out []services.CatalogEntry
	for _, e := range c.entries[domain] {
		if services.Normalize(e.Name) == normalizedName {
			out = append(out, e)
		}
	}
	return out, nil
}

func memoryCatalog() services.Catalog {
	return &staticCatalog{entries: map[services.Domain][]services.CatalogEntry{
		services.DomainInterior: {
			{InternalID: "id_int1", Code: "INT001", Name: "Ceiling tile", MaterialUnitCost: 50, LaborUnitCost: 20, TotalUnitCost: 70, Unit: "sqm"},
		},
	}}
}

// buildWorkbook returns an xlsx with one interior sheet holding a single
// matchable row at Excel row 11.
func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), "INT-1"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	cells := map[string]any{
		"B10": "Code", "C10": "Description",
		"B11": "INT001", "C11": "Ceiling tile", "D11": 10, "E11": "sqm",
	}
	for cell, v := range cells {
		if err := f.SetCellValue("INT-1", cell, v); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return buf.Bytes()
}

// multipartUpload wraps workbook bytes in a multipart body for the upload
// endpoint.
func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}
