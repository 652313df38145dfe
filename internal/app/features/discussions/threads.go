package discussions

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/inputval"
	"github.com/dalemusser/capstonehub/internal/app/system/normalize"
	"github.com/dalemusser/capstonehub/internal/app/system/sanitize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createThreadRequest struct {
	ProjectID string `json:"project_id" validate:"required" label:"Project"`
	Title     string `json:"title" validate:"required,max=200" label:"Title"`
	Body      string `json:"body" validate:"max=10000" label:"Body"`
}

// CreateThread handles POST /api/discussions.
func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req createThreadRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "create thread: decode failed", err, "Invalid request body.")
		return
	}
	req.Title = normalize.Text(req.Title)
	req.Body = sanitize.Text(req.Body)
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.Error(w, http.StatusBadRequest, res.First())
		return
	}
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid project id.")
		return
	}

	project, status, errMsg := h.authorizeProject(r, projectID)
	if errMsg != "" {
		httpjson.Error(w, status, errMsg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	thread, err := h.Discussions.Create(ctx, models.Discussion{
		ProjectID: project.ID,
		Title:     req.Title,
		Body:      req.Body,
		CreatedBy: userID,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create thread failed", err, "Unable to save the thread.")
		return
	}

	h.Log.Info("discussion thread created",
		zap.String("discussion_id", thread.ID.Hex()),
		zap.String("project_id", project.ID.Hex()))

	httpjson.Respond(w, http.StatusCreated, thread)
}

// ListByProject handles GET /api/projects/{id}/discussions.
func (h *Handler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "project not found")
		return
	}

	project, status, errMsg := h.authorizeProject(r, projectID)
	if errMsg != "" {
		httpjson.Error(w, status, errMsg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Discussions.ListByProject(ctx, project.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list threads failed", err, "A database error occurred.")
		return
	}
	if list == nil {
		list = []models.Discussion{}
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"discussions": list})
}

// threadView is the thread detail: the thread and its comments, oldest
// first.
type threadView struct {
	Discussion models.Discussion `json:"discussion"`
	Comments   []models.Comment  `json:"comments"`
}

// GetThread handles GET /api/discussions/{id}.
func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	thread, status, errMsg := h.loadThread(r)
	if errMsg != "" {
		httpjson.Error(w, status, errMsg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comments, err := h.Discussions.ListComments(ctx, thread.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list comments failed", err, "A database error occurred.")
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	httpjson.Respond(w, http.StatusOK, threadView{Discussion: thread, Comments: comments})
}

// loadThread resolves {id} and authorizes against the owning project.
func (h *Handler) loadThread(r *http.Request) (models.Discussion, int, string) {
	threadID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return models.Discussion{}, http.StatusNotFound, "discussion not found"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	thread, err := h.Discussions.GetByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Discussion{}, http.StatusNotFound, "discussion not found"
		}
		return models.Discussion{}, http.StatusInternalServerError, "A database error occurred."
	}

	if _, status, errMsg := h.authorizeProject(r, thread.ProjectID); errMsg != "" {
		return models.Discussion{}, status, errMsg
	}
	return thread, 0, ""
}
