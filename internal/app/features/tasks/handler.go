package tasks

import (
	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	projectstore "github.com/dalemusser/capstonehub/internal/app/store/projects"
	taskstore "github.com/dalemusser/capstonehub/internal/app/store/tasks"
	"github.com/dalemusser/capstonehub/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the task lifecycle handlers.
type Handler struct {
	DB       *mongo.Database
	Tasks    *taskstore.Store
	Projects *projectstore.Store
	Notify   *notify.Notifier
	Log      *zap.Logger
	ErrLog   *httpjson.ErrorLogger
}

// NewHandler constructs a tasks Handler.
func NewHandler(db *mongo.Database, errLog *httpjson.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Tasks:    taskstore.New(db),
		Projects: projectstore.New(db),
		Notify:   notify.New(db, logger),
		Log:      logger,
		ErrLog:   errLog,
	}
}
