package projects

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/grades"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// List handles GET /api/projects, filtered by role: students see their
// own projects, supervisors the ones they oversee, coordinators all.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		list []models.Project
		err  error
	)
	switch {
	case authz.IsCoordinator(r):
		list, err = h.Projects.ListAll(ctx)
	case authz.IsSupervisor(r):
		list, err = h.Projects.ListForSupervisor(ctx, userID)
	default:
		list, err = h.Projects.ListForMember(ctx, userID)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list projects failed", err, "A database error occurred.")
		return
	}
	if list == nil {
		list = []models.Project{}
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"projects": list})
}

// projectView is the detail response: the project, its tasks with
// derived priority, and the fresh grade summary.
type projectView struct {
	Project models.Project `json:"project"`
	Tasks   []taskView     `json:"tasks"`
	Grades  grades.Result  `json:"grades"`
	Weights grades.WeightCheck `json:"weight_check"`
}

type taskView struct {
	models.Task
	DerivedPriority models.TaskPriority `json:"derived_priority"`
}

// Get handles GET /api/projects/{id}. Progress is recomputed from the
// live task set; the cached value is refreshed best-effort so a failed
// write never breaks the read.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	project, status, errMsg := h.loadAuthorized(r)
	if errMsg != "" {
		httpjson.Error(w, status, errMsg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, err := h.Tasks.ListByProject(ctx, project.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get project: tasks failed", err, "A database error occurred.")
		return
	}

	now := time.Now().UTC()
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView{Task: t, DerivedPriority: grades.PriorityFor(t, now)})
	}

	progress := grades.Progress(tasks)
	if progress != project.Progress {
		if perr := h.Projects.SetProgress(ctx, project.ID, progress); perr != nil {
			h.Log.Warn("progress refresh failed",
				zap.String("project_id", project.ID.Hex()),
				zap.Error(perr))
		}
		project.Progress = progress
	}

	httpjson.Respond(w, http.StatusOK, projectView{
		Project: project,
		Tasks:   views,
		Grades:  grades.Weighted(tasks),
		Weights: grades.ValidateWeights(tasks),
	})
}

// loadAuthorized resolves {id} and checks the signed-in user may see
// the project. Returns a non-empty errMsg (with its status) on denial.
func (h *Handler) loadAuthorized(r *http.Request) (models.Project, int, string) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return models.Project{}, http.StatusUnauthorized, "sign in required"
	}

	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return models.Project{}, http.StatusNotFound, "project not found"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, http.StatusNotFound, "project not found"
		}
		return models.Project{}, http.StatusInternalServerError, "A database error occurred."
	}

	switch {
	case authz.IsCoordinator(r):
	case authz.IsSupervisor(r):
		if project.SupervisorID != userID {
			return models.Project{}, http.StatusForbidden, "forbidden"
		}
	default:
		if !project.HasMember(userID) {
			return models.Project{}, http.StatusForbidden, "forbidden"
		}
	}
	return project, 0, ""
}
