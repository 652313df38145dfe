package messages

import (
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the /api/messages routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(auth.RequireSignedIn)

	r.Post("/", h.Send)
	r.Get("/", h.Inbox)
	r.Get("/unread-count", h.UnreadCount)
	r.Get("/with/{userID}", h.Conversation)
	r.Post("/{id}/read", h.MarkRead)
}
