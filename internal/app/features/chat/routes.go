package chat

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the chat proxy. Rate limiting is per-IP, so the
// route does not require a session.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Serve)
}
