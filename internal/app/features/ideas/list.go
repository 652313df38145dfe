package ideas

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/normalize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// List handles GET /api/ideas. Students see ideas they are on;
// coordinators see the review queue (or ?status= to filter).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		ideas []models.ProjectIdea
		err   error
	)
	switch {
	case authz.IsCoordinator(r):
		status := models.IdeaStatus(r.URL.Query().Get("status"))
		if status == "" {
			status = models.IdeaPending
		}
		ideas, err = h.Ideas.ListByStatus(ctx, status)
	default:
		ideas, err = h.Ideas.ListForEmail(ctx, normalize.Email(authz.UserEmail(r)))
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list ideas failed", err, "A database error occurred.")
		return
	}
	if ideas == nil {
		ideas = []models.ProjectIdea{}
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"ideas": ideas})
}

// Get handles GET /api/ideas/{id}. Team members and staff may view.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ideaID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "idea not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	idea, err := h.Ideas.GetByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "idea not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "get idea failed", err, "A database error occurred.")
		return
	}

	if !authz.IsStaff(r) && !onTeam(idea, normalize.Email(authz.UserEmail(r))) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	httpjson.Respond(w, http.StatusOK, idea)
}

func onTeam(idea models.ProjectIdea, email string) bool {
	for _, m := range idea.TeamMembers {
		if m.Email == email {
			return true
		}
	}
	return false
}
