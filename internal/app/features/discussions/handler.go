package discussions

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	discussionstore "github.com/dalemusser/capstonehub/internal/app/store/discussions"
	projectstore "github.com/dalemusser/capstonehub/internal/app/store/projects"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the discussion-thread handlers.
type Handler struct {
	DB          *mongo.Database
	Discussions *discussionstore.Store
	Projects    *projectstore.Store
	Log         *zap.Logger
	ErrLog      *httpjson.ErrorLogger
}

// NewHandler constructs a discussions Handler.
func NewHandler(db *mongo.Database, errLog *httpjson.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Discussions: discussionstore.New(db),
		Projects:    projectstore.New(db),
		Log:         logger,
		ErrLog:      errLog,
	}
}

// authorizeProject checks the signed-in user may participate in a
// project's discussions: its team, its supervisor, or a coordinator.
func (h *Handler) authorizeProject(r *http.Request, projectID primitive.ObjectID) (models.Project, int, string) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return models.Project{}, http.StatusUnauthorized, "sign in required"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, http.StatusNotFound, "project not found"
		}
		return models.Project{}, http.StatusInternalServerError, "A database error occurred."
	}

	switch {
	case authz.IsCoordinator(r):
	case authz.IsSupervisor(r):
		if project.SupervisorID != userID {
			return models.Project{}, http.StatusForbidden, "forbidden"
		}
	default:
		if !project.HasMember(userID) {
			return models.Project{}, http.StatusForbidden, "forbidden"
		}
	}
	return project, 0, ""
}
