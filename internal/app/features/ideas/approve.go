package ideas

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	ideastore "github.com/dalemusser/capstonehub/internal/app/store/ideas"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/normalize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/app/system/txn"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ApproveMember handles POST /api/ideas/{id}/approve. The signed-in
// student approves their own invite; the array-filtered update and the
// all-approved recompute run inside one transaction so concurrent
// approvals cannot lose each other.
func (h *Handler) ApproveMember(w http.ResponseWriter, r *http.Request) {
	_, name, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	email := normalize.Email(authz.UserEmail(r))

	ideaID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "idea not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var idea models.ProjectIdea
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		var terr error
		idea, terr = h.Ideas.ApproveMember(ctx, ideaID, email, userID, name)
		return terr
	})
	if err != nil {
		switch {
		case errors.Is(err, ideastore.ErrMemberNotFound):
			httpjson.Error(w, http.StatusNotFound, "You are not invited to this idea.")
		case errors.Is(err, ideastore.ErrAlreadyApproved):
			httpjson.Error(w, http.StatusConflict, "You have already approved this idea.")
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.Error(w, http.StatusNotFound, "idea not found")
		default:
			h.ErrLog.LogServerError(w, r, "approve member failed", err, "A database error occurred.")
		}
		return
	}

	// Every member approved: the idea is now visible to coordinators.
	if idea.Status == models.IdeaPending {
		coordinators, cerr := h.Users.ListByRole(ctx, models.RoleCoordinator)
		if cerr != nil {
			h.Log.Warn("approve: coordinator lookup failed", zap.Error(cerr))
		}
		for _, c := range coordinators {
			h.Notify.Send(ctx, c.ID,
				"Idea ready for review",
				"\""+idea.Title+"\" has full team approval and awaits a decision.",
				models.NotifyInfo, "idea", "/api/ideas/"+idea.ID.Hex())
		}
	}

	httpjson.Respond(w, http.StatusOK, idea)
}

// RejectMember handles POST /api/ideas/{id}/reject: the signed-in
// student declines their invite and is removed from the team.
func (h *Handler) RejectMember(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	email := normalize.Email(authz.UserEmail(r))

	ideaID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "idea not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	idea, err := h.Ideas.RemoveMember(ctx, ideaID, email)
	if err != nil {
		if errors.Is(err, ideastore.ErrMemberNotFound) {
			httpjson.Error(w, http.StatusNotFound, "You are not invited to this idea.")
			return
		}
		h.ErrLog.LogServerError(w, r, "reject member failed", err, "A database error occurred.")
		return
	}

	h.Notify.Send(ctx, idea.ProposedBy,
		"Team member declined",
		email+" declined to join \""+idea.Title+"\".",
		models.NotifyWarning, "idea", "/api/ideas/"+idea.ID.Hex())

	httpjson.Respond(w, http.StatusOK, idea)
}
