package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"github.com/natchapol2347/boq-app/services"
)

// sanitizeFilename strips characters that break a Content-Disposition value.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(`"`, "", `\`, "", "/", "_", "\r", "", "\n", "")
	cleaned := strings.TrimSpace(replacer.Replace(name))
	if cleaned == "" {
		return "boq"
	}
	return cleaned
}

// HandleDownload returns a handler that streams a finalized session's
// annotated workbook and moves the session to its terminal DOWNLOADED state.
func HandleDownload(store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		sess, ok := store.Get(id)
		if !ok {
			return e.JSON(http.StatusNotFound, map[string]any{
				"success": false, "error": "session not found",
			})
		}

		if err := sess.Advance(services.StateDownloaded); err != nil {
			log.Printf("boq_download: session %s: %v", sess.ID, err)
			return e.JSON(http.StatusConflict, map[string]any{
				"success": false, "error": fmt.Sprintf("session not downloadable: %v", err),
			})
		}

		filename := fmt.Sprintf("final_%s", sanitizeFilename(sess.Filename))
		if !strings.HasSuffix(filename, ".xlsx") {
			filename += ".xlsx"
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(sess.Output())
		return nil
	}
}

type cleanupRequest struct {
	SessionID string `json:"session_id"`
}

// HandleCleanupSession returns a handler that drops a session from the
// store, releasing its workbook bytes.
func HandleCleanupSession(store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req cleanupRequest
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"success": false, "error": "invalid request body",
			})
		}
		store.Delete(req.SessionID)
		return e.JSON(http.StatusOK, map[string]any{"success": true})
	}
}
