package announcements

import (
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the /api/announcements routes. Reads are open to
// any signed-in user; writes are coordinator-only.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(string(models.RoleCoordinator)))
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Post("/{id}/toggle", h.Toggle)
		r.Delete("/{id}", h.Delete)
	})
}
