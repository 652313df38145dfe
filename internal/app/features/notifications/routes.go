package notifications

import (
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the /api/notifications routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Get("/unread-count", h.UnreadCount)
	r.Post("/read-all", h.MarkAllRead)
	r.Post("/{id}/read", h.MarkRead)
}
