package meetings

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	meetingstore "github.com/dalemusser/capstonehub/internal/app/store/meetings"
	projectstore "github.com/dalemusser/capstonehub/internal/app/store/projects"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/notify"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the meeting handlers.
type Handler struct {
	DB       *mongo.Database
	Meetings *meetingstore.Store
	Projects *projectstore.Store
	Notify   *notify.Notifier
	Log      *zap.Logger
	ErrLog   *httpjson.ErrorLogger
}

// NewHandler constructs a meetings Handler.
func NewHandler(db *mongo.Database, errLog *httpjson.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Meetings: meetingstore.New(db),
		Projects: projectstore.New(db),
		Notify:   notify.New(db, logger),
		Log:      logger,
		ErrLog:   errLog,
	}
}

// loadProject resolves a project id param and checks visibility.
func (h *Handler) loadProject(r *http.Request, param string) (models.Project, int, string) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return models.Project{}, http.StatusUnauthorized, "sign in required"
	}

	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, param))
	if err != nil {
		return models.Project{}, http.StatusNotFound, "project not found"
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
