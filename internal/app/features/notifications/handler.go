package notifications

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	notificationstore "github.com/dalemusser/capstonehub/internal/app/store/notifications"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the notification handlers. Notifications are created by
// other features through system/notify; this feature only reads and
// acknowledges them.
type Handler struct {
	DB            *mongo.Database
	Notifications *notificationstore.Store
	Log           *zap.Logger
	ErrLog        *httpjson.ErrorLogger
}

// NewHandler constructs a notifications Handler.
func NewHandler(db *mongo.Database, errLog *httpjson.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Notifications: notificationstore.New(db),
		Log:           logger,
		ErrLog:        errLog,
	}
}

// List handles GET /api/notifications?limit=N (own notifications,
// newest first).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			httpjson.Error(w, http.StatusBadRequest, "Invalid limit.")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Notifications.ListForUser(ctx, userID, limit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list notifications failed", err, "A database error occurred.")
		return
	}
	if list == nil {
		list = []models.Notification{}
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"notifications": list})
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	count, err := h.Notifications.UnreadCount(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "unread count failed", err, "A database error occurred.")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"unread": count})
}

// MarkRead handles POST /api/notifications/{id}/read, scoped to the
// owner.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	noteID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "notification not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, noteID, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "notification not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "mark notification read failed", err, "A database error occurred.")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"read": true})
}

// MarkAllRead handles POST /api/notifications/read-all.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Notifications.MarkAllRead(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "mark all read failed", err, "A database error occurred.")
		return
	}

	h.Log.Debug("notifications marked read",
		zap.String("user_id", userID.Hex()),
		zap.Int64("count", updated))

	httpjson.Respond(w, http.StatusOK, map[string]any{"updated": updated})
}
