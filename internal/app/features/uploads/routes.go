package uploads

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the upload proxy.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Serve)
}
