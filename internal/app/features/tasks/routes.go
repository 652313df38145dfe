package tasks

import (
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the /api/tasks routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(auth.RequireSignedIn)

	r.Get("/{id}", h.Get)
	r.With(auth.RequireRole(string(models.RoleStudent))).Post("/{id}/submit", h.Submit)
	r.With(auth.RequireRole(string(models.RoleSupervisor))).Post("/{id}/grade", h.Grade)
	r.With(auth.RequireRole(string(models.RoleSupervisor))).Delete("/{id}", h.Delete)
}

// MountProjectRoutes mounts the project-scoped task routes on the
// /api/projects subtree.
func (h *Handler) MountProjectRoutes(r chi.Router) {
	r.Get("/{id}/tasks", h.ListByProject)
	r.With(auth.RequireRole(string(models.RoleSupervisor))).Post("/{id}/tasks", h.Assign)
}
