package tasks

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	taskstore "github.com/dalemusser/capstonehub/internal/app/store/tasks"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/inputval"
	"github.com/dalemusser/capstonehub/internal/app/system/sanitize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"go.uber.org/zap"
)

type submitRequest struct {
	Text     string   `json:"text" validate:"max=10000" label:"Submission text"`
	FileURLs []string `json:"file_urls" validate:"max=10,dive,url,max=2048" label:"File links"`
}

// Submit handles POST /api/tasks/{id}/submit. Any member of the owning
// project's team may submit; a graded task no longer accepts one.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	task, project, status, errMsg := h.loadTask(r)
	if errMsg != "" {
		httpjson.Error(w, status, errMsg)
		return
	}
	if !project.HasMember(userID) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	var req submitRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "submit task: decode failed", err, "Invalid request body.")
		return
	}
	req.Text = sanitize.Text(req.Text)
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.Error(w, http.StatusBadRequest, res.First())
		return
	}
	if req.Text == "" && len(req.FileURLs) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "A submission needs text or at least one file.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Tasks.Submit(ctx, task.ID, models.Submission{
		Text:        req.Text,
		FileURLs:    req.FileURLs,
		SubmittedBy: userID,
	})
	if err != nil {
		if errors.Is(err, taskstore.ErrAlreadyGraded) {
			httpjson.Error(w, http.StatusConflict, "This task has already been graded.")
			return
		}
		h.ErrLog.LogServerError(w, r, "submit task: update failed", err, "Unable to save the submission.")
		return
	}

	h.Log.Info("task submitted",
		zap.String("task_id", task.ID.Hex()),
		zap.String("submitted_by", userID.Hex()))

	h.Notify.Send(ctx, project.SupervisorID, "Task submitted",
		"\""+task.Title+"\" was submitted for "+project.Title+".",
		models.NotifyInfo, "task", "/api/tasks/"+task.ID.Hex())

	httpjson.Respond(w, http.StatusOK, updated)
}
