package ideas

import (
	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	ideastore "github.com/dalemusser/capstonehub/internal/app/store/ideas"
	projectstore "github.com/dalemusser/capstonehub/internal/app/store/projects"
	userstore "github.com/dalemusser/capstonehub/internal/app/store/users"
	"github.com/dalemusser/capstonehub/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the project-idea (team formation) handlers.
type Handler struct {
	DB       *mongo.Database
	Ideas    *ideastore.Store
	Projects *projectstore.Store
	Users    *userstore.Store
	Notify   *notify.Notifier
	Log      *zap.Logger
	ErrLog   *httpjson.ErrorLogger
}

// NewHandler constructs an ideas Handler.
func NewHandler(db *mongo.Database, errLog *httpjson.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Ideas:    ideastore.New(db),
		Projects: projectstore.New(db),
		Users:    userstore.New(db),
		Notify:   notify.New(db, logger),
		Log:      logger,
		ErrLog:   errLog,
	}
}
