package meetings

import (
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the /api/meetings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(auth.RequireSignedIn)

	r.With(auth.RequireRole(string(models.RoleSupervisor))).Post("/", h.Schedule)
	r.With(auth.RequireRole(string(models.RoleSupervisor))).Post("/{id}/cancel", h.Cancel)
}

// MountProjectRoutes mounts the project-scoped meeting routes on the
// /api/projects subtree.
func (h *Handler) MountProjectRoutes(r chi.Router) {
	r.Get("/{id}/meetings", h.ListByProject)
}
