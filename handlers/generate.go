package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"github.com/natchapol2347/boq-app/services"
)

type generateRequest struct {
	SessionID     string `json:"session_id"`
	MarkupPercent int    `json:"markup_percent"`
}

// HandleGenerateFinalBOQ returns a handler that costs a matched session,
// writes the costs back into the workbook and stores the result for
// download. markup_percent defaults to 100 when omitted.
func HandleGenerateFinalBOQ(proc *services.Processor, store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req generateRequest
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"success": false, "error": "invalid request body",
			})
		}
		if req.MarkupPercent == 0 {
			req.MarkupPercent = 100
		}

		sess, ok := store.Get(req.SessionID)
		if !ok {
			return e.JSON(http.StatusNotFound, map[string]any{
				"success": false, "error": "invalid session",
			})
		}

		if err := proc.Finalize(e.Request.Context(), sess, req.MarkupPercent); err != nil {
			log.Printf("boq_finalize: session %s: %v", sess.ID, err)
			if errors.Is(err, services.ErrAllSheetsFailed) {
				return e.JSON(http.StatusOK, map[string]any{
					"success": false,
					"state":   sess.State(),
					"error":   err.Error(),
					"sheets":  summarize(sess.Results),
				})
			}
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{
				"success": false, "error": err.Error(),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"success":      true,
			"state":        sess.State(),
			"download_url": fmt.Sprintf("/api/download/%s", sess.ID),
			"sheets":       summarize(sess.Results),
		})
	}
}
