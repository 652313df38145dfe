package discussions

import (
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the /api/discussions routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(auth.RequireSignedIn)

	r.Post("/", h.CreateThread)
	r.Get("/{id}", h.GetThread)
	r.Post("/{id}/comments", h.AddComment)
}

// MountProjectRoutes mounts the project-scoped discussion routes on
// the /api/projects subtree.
func (h *Handler) MountProjectRoutes(r chi.Router) {
	r.Get("/{id}/discussions", h.ListByProject)
}
