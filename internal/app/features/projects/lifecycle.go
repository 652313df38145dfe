package projects

import (
	"context"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"go.uber.org/zap"
)

// Complete handles POST /api/projects/{id}/complete (supervisor).
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	project, status, errMsg := h.loadAuthorized(r)
	if errMsg != "" {
		httpjson.Error(w, status, errMsg)
		return
	}
	if project.Status != models.ProjectActive {
		httpjson.Error(w, http.StatusConflict, "Only active projects can be completed.")
		return
	}
	h.setStatus(w, r, project, models.ProjectCompleted, "Project completed",
		"\""+project.Title+"\" has been marked completed.")
}

// Archive handles POST /api/projects/{id}/archive (coordinator).
// Archiving is reversible; see Unarchive.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	project, status, errMsg := h.loadAuthorized(r)
	if errMsg != "" {
		httpjson.Error(w, status, errMsg)
		return
	}
	if project.Status == models.ProjectArchived {
		httpjson.Error(w, http.StatusConflict, "Project is already archived.")
		return
	}
	h.setStatus(w, r, project, models.ProjectArchived, "Project archived",
		"\""+project.Title+"\" has been archived.")
}

// Unarchive handles POST /api/projects/{id}/unarchive (coordinator).
// The project returns to active.
func (h *Handler) Unarchive(w http.ResponseWriter, r *http.Request) {
	project, status, errMsg := h.loadAuthorized(r)
	if errMsg != "" {
		httpjson.Error(w, status, errMsg)
		return
	}
	if project.Status != models.ProjectArchived {
		httpjson.Error(w, http.StatusConflict, "Project is not archived.")
		return
	}
	h.setStatus(w, r, project, models.ProjectActive, "Project restored",
		"\""+project.Title+"\" has been restored to active.")
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, project models.Project, to models.ProjectStatus, title, message string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Projects.SetStatus(ctx, project.ID, to); err != nil {
		h.ErrLog.LogServerError(w, r, "project status change failed", err, "A database error occurred.")
		return
	}

	h.Log.Info("project status changed",
		zap.String("project_id", project.ID.Hex()),
		zap.String("from", string(project.Status)),
		zap.String("to", string(to)))

	h.Notify.SendAll(ctx, project.TeamMemberIDs, title, message,
		models.NotifyInfo, "project", "/api/projects/"+project.ID.Hex())

	updated, err := h.Projects.GetByID(ctx, project.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "project reload failed", err, "A database error occurred.")
		return
	}
	httpjson.Respond(w, http.StatusOK, updated)
}
