// Package handlers exposes the JSON boundary of the BOQ costing engine:
// upload/process, finalize, download and session cleanup.
package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"github.com/natchapol2347/boq-app/services"
)

// sheetSummary is the per-sheet view returned by the processing endpoints.
type sheetSummary struct {
	Sheet      string                     `json:"sheet"`
	Domain     services.Domain            `json:"domain"`
	TotalItems int                        `json:"total_items"`
	Matched    int                        `json:"matched"`
	Warnings   []services.ValidationError `json:"warnings,omitempty"`
	Error      string                     `json:"error,omitempty"`
}

func summarize(results []services.SheetResult) []sheetSummary {
	out := make([]sheetSummary, 0, len(results))
	for i := range results {
		res := &results[i]
		out = append(out, sheetSummary{
			Sheet:      res.Sheet,
			Domain:     res.Domain,
			TotalItems: len(res.Items),
			Matched:    res.Matched,
			Warnings:   res.Warnings,
			Error:      res.Error(),
		})
	}
	return out
}

// HandleProcessBOQ returns a handler that ingests an uploaded BOQ workbook,
// creates a processing session and runs extraction + matching over it.
func HandleProcessBOQ(proc *services.Processor, store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Parse multipart form (max 20MB)
		if err := e.Request.ParseMultipartForm(20 << 20); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"success": false, "error": "file too large or invalid form data",
			})
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"success": false, "error": "no file uploaded",
			})
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			log.Printf("boq_process: read upload: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]any{
				"success": false, "error": "could not read uploaded file",
			})
		}

		sess := services.NewSession(header.Filename, data)
		if err := proc.ProcessUpload(e.Request.Context(), sess); err != nil {
			log.Printf("boq_process: session %s: %v", sess.ID, err)
			status := http.StatusUnprocessableEntity
			if errors.Is(err, services.ErrAllSheetsFailed) {
				status = http.StatusOK // surfaced per sheet below
			}
			if sess.State() == services.StateFailed && !errors.Is(err, services.ErrAllSheetsFailed) {
				return e.JSON(status, map[string]any{
					"success": false, "error": err.Error(),
				})
			}
		}
		store.Put(sess)

		totalItems := 0
		matched := 0
		for i := range sess.Results {
			totalItems += len(sess.Results[i].Items)
			matched += sess.Results[i].Matched
		}
		matchRate := 0.0
		if totalItems > 0 {
			matchRate = float64(matched) / float64(totalItems) * 100
		}

		return e.JSON(http.StatusOK, map[string]any{
			"success":    sess.State() != services.StateFailed,
			"session_id": sess.ID,
			"state":      sess.State(),
			"summary": map[string]any{
				"total_items":      totalItems,
				"matched_items":    matched,
				"match_rate":       matchRate,
				"sheets_processed": len(sess.Results),
			},
			"sheets": summarize(sess.Results),
		})
	}
}
