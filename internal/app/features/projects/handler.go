package projects

import (
	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	projectstore "github.com/dalemusser/capstonehub/internal/app/store/projects"
	taskstore "github.com/dalemusser/capstonehub/internal/app/store/tasks"
	"github.com/dalemusser/capstonehub/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the project handlers.
type Handler struct {
	DB       *mongo.Database
	Projects *projectstore.Store
	Tasks    *taskstore.Store
	Notify   *notify.Notifier
	Log      *zap.Logger
	ErrLog   *httpjson.ErrorLogger
}

// NewHandler constructs a projects Handler.
func NewHandler(db *mongo.Database, errLog *httpjson.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Projects: projectstore.New(db),
		Tasks:    taskstore.New(db),
		Notify:   notify.New(db, logger),
		Log:      logger,
		ErrLog:   errLog,
	}
}
