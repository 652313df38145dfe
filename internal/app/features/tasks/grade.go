package tasks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/grades"
	"github.com/dalemusser/capstonehub/internal/app/system/inputval"
	"github.com/dalemusser/capstonehub/internal/app/system/sanitize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"go.uber.org/zap"
)

type gradeRequest struct {
	Grade    float64 `json:"grade" validate:"min=0" label:"Grade"`
	Feedback string  `json:"feedback" validate:"max=5000" label:"Feedback"`
}

type gradeResponse struct {
	Task   models.Task   `json:"task"`
	Grades grades.Result `json:"grades"`
}

// Grade handles POST /api/tasks/{id}/grade (the owning supervisor).
// Grading works from any state, including re-grading an already graded
// task. The response carries the project's recomputed grade summary.
func (h *Handler) Grade(w http.ResponseWriter, r *http.Request) {
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
	if project.SupervisorID != userID {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	var req gradeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "grade task: decode failed", err, "Invalid request body.")
		return
	}
	req.Feedback = sanitize.Text(req.Feedback)
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.Error(w, http.StatusBadRequest, res.First())
		return
	}
	if req.Grade > task.MaxGrade {
		httpjson.Error(w, http.StatusBadRequest,
			fmt.Sprintf("Grade must be between 0 and %g.", task.MaxGrade))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Tasks.Grade(ctx, task.ID, userID, req.Grade, req.Feedback)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "grade task: update failed", err, "Unable to save the grade.")
		return
	}

	h.Log.Info("task graded",
		zap.String("task_id", task.ID.Hex()),
		zap.String("project_id", project.ID.Hex()),
		zap.Float64("grade", req.Grade),
		zap.Float64("max_grade", task.MaxGrade))

	h.Notify.SendAll(ctx, project.TeamMemberIDs, "Task graded",
		fmt.Sprintf("\"%s\" was graded %g/%g.", task.Title, req.Grade, task.MaxGrade),
		models.NotifyInfo, "task", "/api/tasks/"+task.ID.Hex())

	all, err := h.Tasks.ListByProject(ctx, project.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "grade task: summary failed", err, "A database error occurred.")
		return
	}
	if perr := h.Projects.SetProgress(ctx, project.ID, grades.Progress(all)); perr != nil {
		h.Log.Warn("progress refresh failed",
			zap.String("project_id", project.ID.Hex()),
			zap.Error(perr))
	}

	httpjson.Respond(w, http.StatusOK, gradeResponse{Task: updated, Grades: grades.Weighted(all)})
}
