package projects

import (
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the project routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.With(auth.RequireRole(string(models.RoleSupervisor))).Post("/{id}/complete", h.Complete)
	r.With(auth.RequireRole(string(models.RoleCoordinator))).Post("/{id}/archive", h.Archive)
	r.With(auth.RequireRole(string(models.RoleCoordinator))).Post("/{id}/unarchive", h.Unarchive)
}
