package tasks

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/grades"
	"github.com/dalemusser/capstonehub/internal/app/system/inputval"
	"github.com/dalemusser/capstonehub/internal/app/system/normalize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type assignRequest struct {
	Title       string     `json:"title" validate:"required,max=200" label:"Title"`
	Description string     `json:"description" validate:"max=5000" label:"Description"`
	Weight      float64    `json:"weight" validate:"min=0,max=100" label:"Weight"`
	MaxGrade    float64    `json:"max_grade" validate:"gt=0" label:"Max grade"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high urgent" label:"Priority"`
	DueDate     *time.Time `json:"due_date" label:"Due date"`
}

type assignResponse struct {
	Task        models.Task        `json:"task"`
	WeightCheck grades.WeightCheck `json:"weight_check"`
}

// Assign handles POST /api/projects/{id}/tasks (supervisor). The weight
// check in the response is advisory: an over- or under-allocated
// project is reported, not rejected.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "project not found")
		return
	}

	var req assignRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "assign task: decode failed", err, "Invalid request body.")
		return
	}
	req.Title = normalize.Text(req.Title)
	req.Description = normalize.Text(req.Description)
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.Error(w, http.StatusBadRequest, res.First())
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
		h.ErrLog.LogServerError(w, r, "assign task: project lookup failed", err, "A database error occurred.")
		return
	}
	if project.SupervisorID != userID {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	task, err := h.Tasks.Create(ctx, models.Task{
		ProjectID:   project.ID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		Weight:      req.Weight,
		MaxGrade:    req.MaxGrade,
		DueDate:     req.DueDate,
		CreatedBy:   userID,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "assign task: create failed", err, "Unable to save the task.")
		return
	}

	h.Log.Info("task assigned",
		zap.String("task_id", task.ID.Hex()),
		zap.String("project_id", project.ID.Hex()),
		zap.Float64("weight", task.Weight))

	h.Notify.SendAll(ctx, project.TeamMemberIDs, "New task assigned",
		"\""+task.Title+"\" was added to "+project.Title+".",
		models.NotifyInfo, "task", "/api/tasks/"+task.ID.Hex())

	check := h.refreshProject(ctx, w, r, project.ID)
	if check == nil {
		return
	}
	httpjson.Respond(w, http.StatusCreated, assignResponse{Task: task, WeightCheck: *check})
}

// refreshProject recomputes progress and the weight advisory from the
// live task set after a mutation. Returns nil after writing an error
// response.
func (h *Handler) refreshProject(ctx context.Context, w http.ResponseWriter, r *http.Request, projectID primitive.ObjectID) *grades.WeightCheck {
	all, err := h.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "task refresh: list failed", err, "A database error occurred.")
		return nil
	}
	if err := h.Projects.SetProgress(ctx, projectID, grades.Progress(all)); err != nil {
		h.Log.Warn("progress refresh failed",
			zap.String("project_id", projectID.Hex()),
			zap.Error(err))
	}
	check := grades.ValidateWeights(all)
	return &check
}
