package tasks

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// loadTask resolves the {id} task route param and its owning project.
// A non-empty errMsg (with its status) means the request should stop.
func (h *Handler) loadTask(r *http.Request) (models.Task, models.Project, int, string) {
	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return models.Task{}, models.Project{}, http.StatusNotFound, "task not found"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	task, err := h.Tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Task{}, models.Project{}, http.StatusNotFound, "task not found"
		}
		return models.Task{}, models.Project{}, http.StatusInternalServerError, "A database error occurred."
	}

	project, err := h.Projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return models.Task{}, models.Project{}, http.StatusInternalServerError, "A database error occurred."
	}
	return task, project, 0, ""
}

// canView mirrors project visibility: coordinators see everything,
// supervisors their own projects, students the ones they belong to.
func canView(r *http.Request, project models.Project) bool {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	switch {
	case authz.IsCoordinator(r):
		return true
	case authz.IsSupervisor(r):
		return project.SupervisorID == userID
	default:
		return project.HasMember(userID)
	}
}

// ownsProject reports whether the signed-in supervisor oversees the
// project. Task assignment, grading, and deletion are limited to them.
func ownsProject(r *http.Request, project models.Project) bool {
	_, _, userID, ok := authz.UserCtx(r)
	return ok && authz.IsSupervisor(r) && project.SupervisorID == userID
}
