package tasks

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/grades"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type taskView struct {
	models.Task
	DerivedPriority models.TaskPriority `json:"derived_priority"`
}

// Get handles GET /api/tasks/{id} with project-level visibility.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	task, project, status, errMsg := h.loadTask(r)
	if errMsg != "" {
		httpjson.Error(w, status, errMsg)
		return
	}
	if !canView(r, project) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}
	httpjson.Respond(w, http.StatusOK, taskView{
		Task:            task,
		DerivedPriority: grades.PriorityFor(task, time.Now().UTC()),
	})
}

// ListByProject handles GET /api/projects/{id}/tasks.
func (h *Handler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "project not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "project not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "list tasks: project lookup failed", err, "A database error occurred.")
		return
	}
	if !canView(r, project) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	list, err := h.Tasks.ListByProject(ctx, project.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list tasks failed", err, "A database error occurred.")
		return
	}

	now := time.Now().UTC()
	views := make([]taskView, 0, len(list))
	for _, t := range list {
		views = append(views, taskView{Task: t, DerivedPriority: grades.PriorityFor(t, now)})
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"tasks":        views,
		"weight_check": grades.ValidateWeights(list),
	})
}

// Delete handles DELETE /api/tasks/{id} (the owning supervisor).
// Progress is recomputed afterwards since the weight denominator
// changed.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	task, project, status, errMsg := h.loadTask(r)
	if errMsg != "" {
		httpjson.Error(w, status, errMsg)
		return
	}
	if !ownsProject(r, project) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Tasks.Delete(ctx, task.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete task failed", err, "A database error occurred.")
		return
	}
	if deleted == 0 {
		httpjson.Error(w, http.StatusNotFound, "task not found")
		return
	}

	h.Log.Info("task deleted",
		zap.String("task_id", task.ID.Hex()),
		zap.String("project_id", project.ID.Hex()))

	check := h.refreshProject(ctx, w, r, project.ID)
	if check == nil {
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]any{
		"deleted":      true,
		"weight_check": *check,
	})
}
