package discussions

import (
	"context"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/inputval"
	"github.com/dalemusser/capstonehub/internal/app/system/sanitize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"go.uber.org/zap"
)

type addCommentRequest struct {
	Body string `json:"body" validate:"required,max=10000" label:"Comment"`
}

// AddComment handles POST /api/discussions/{id}/comments. The body is
// sanitized before validation so a markup-only comment reads as empty.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	_, name, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	thread, status, errMsg := h.loadThread(r)
	if errMsg != "" {
		httpjson.Error(w, status, errMsg)
		return
	}

	var req addCommentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "add comment: decode failed", err, "Invalid request body.")
		return
	}
	req.Body = sanitize.Text(req.Body)
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comment, err := h.Discussions.AddComment(ctx, models.Comment{
		DiscussionID: thread.ID,
		Body:         req.Body,
		AuthorID:     userID,
		AuthorName:   name,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "add comment failed", err, "Unable to save the comment.")
		return
	}

	h.Log.Info("comment added",
		zap.String("discussion_id", thread.ID.Hex()),
		zap.String("author_id", userID.Hex()))

	httpjson.Respond(w, http.StatusCreated, comment)
}
