package meetings

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
)

// ListByProject handles GET /api/projects/{id}/meetings. With
// ?upcoming=true only scheduled meetings at or after now are returned.
func (h *Handler) ListByProject(w http.ResponseWriter, r *http.Request) {
	project, status, errMsg := h.loadProject(r, "id")
	if errMsg != "" {
		httpjson.Error(w, status, errMsg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		list []models.Meeting
		err  error
	)
	if r.URL.Query().Get("upcoming") == "true" {
		list, err = h.Meetings.ListUpcomingByProject(ctx, project.ID, time.Now().UTC())
	} else {
		list, err = h.Meetings.ListByProject(ctx, project.ID)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list meetings failed", err, "A database error occurred.")
		return
	}
	if list == nil {
		list = []models.Meeting{}
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"meetings": list})
}
