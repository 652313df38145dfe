package ideas

import (
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the idea routes. All require a signed-in user;
// per-route role checks narrow further.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.With(auth.RequireRole(string(models.RoleStudent))).Post("/", h.Propose)
	r.Get("/{id}", h.Get)
	r.With(auth.RequireRole(string(models.RoleStudent))).Post("/{id}/approve", h.ApproveMember)
	r.With(auth.RequireRole(string(models.RoleStudent))).Post("/{id}/reject", h.RejectMember)
	r.With(auth.RequireRole(string(models.RoleCoordinator))).Post("/{id}/decision", h.Decide)
}
