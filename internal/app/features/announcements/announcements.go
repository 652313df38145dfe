package announcements

import (
	"context"
	"errors"
	"net/http"
	"time"

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

type announcementRequest struct {
	Title    string     `json:"title" validate:"required,max=200" label:"Title"`
	Content  string     `json:"content" validate:"required,max=10000" label:"Content"`
	Type     string     `json:"type" validate:"omitempty,oneof=info warning urgent" label:"Type"`
	Active   bool       `json:"active"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

func (req *announcementRequest) clean() (string, bool) {
	req.Title = normalize.Text(req.Title)
	req.Content = sanitize.Text(req.Content)
	if res := inputval.Validate(*req); res.HasErrors() {
		return res.First(), false
	}
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return "The end of the visibility window is before its start.", false
	}
	return "", true
}

// List handles GET /api/announcements. Coordinators see everything;
// everyone else sees only what is active and inside its window.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		list []models.Announcement
		err  error
	)
	if authz.IsCoordinator(r) {
		list, err = h.Announcements.List(ctx)
	} else {
		list, err = h.Announcements.ListVisible(ctx, time.Now().UTC())
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list announcements failed", err, "A database error occurred.")
		return
	}
	if list == nil {
		list = []models.Announcement{}
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"announcements": list})
}

// Create handles POST /api/announcements (coordinator).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req announcementRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "create announcement: decode failed", err, "Invalid request body.")
		return
	}
	if msg, ok := req.clean(); !ok {
		httpjson.Error(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Announcements.Create(ctx, models.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		Type:      models.AnnouncementType(req.Type),
		Active:    req.Active,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		CreatedBy: userID,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create announcement failed", err, "Unable to save the announcement.")
		return
	}

	h.Log.Info("announcement created",
		zap.String("announcement_id", created.ID.Hex()),
		zap.Bool("active", created.Active))

	httpjson.Respond(w, http.StatusCreated, created)
}

// Update handles PUT /api/announcements/{id} (coordinator). A nil
// window bound clears the stored one.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "announcement not found")
		return
	}

	var req announcementRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "update announcement: decode failed", err, "Invalid request body.")
		return
	}
	if msg, ok := req.clean(); !ok {
		httpjson.Error(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	typ := models.AnnouncementType(req.Type)
	if typ == "" {
		typ = models.AnnouncementInfo
	}
	err = h.Announcements.Update(ctx, id, models.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		Type:     typ,
		Active:   req.Active,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "announcement not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "update announcement failed", err, "Unable to save the announcement.")
		return
	}

	updated, err := h.Announcements.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update announcement: reload failed", err, "A database error occurred.")
		return
	}
	httpjson.Respond(w, http.StatusOK, updated)
}

// Toggle handles POST /api/announcements/{id}/toggle (coordinator),
// flipping the active flag.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "announcement not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	current, err := h.Announcements.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "announcement not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "toggle announcement: lookup failed", err, "A database error occurred.")
		return
	}

	if err := h.Announcements.SetActive(ctx, id, !current.Active); err != nil {
		h.ErrLog.LogServerError(w, r, "toggle announcement failed", err, "A database error occurred.")
		return
	}

	current.Active = !current.Active
	httpjson.Respond(w, http.StatusOK, current)
}

// Delete handles DELETE /api/announcements/{id} (coordinator).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "announcement not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Announcements.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "announcement not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "delete announcement failed", err, "A database error occurred.")
		return
	}

	h.Log.Info("announcement deleted", zap.String("announcement_id", id.Hex()))
	httpjson.Respond(w, http.StatusOK, map[string]any{"deleted": true})
}
