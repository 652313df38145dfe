package messages

import (
	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	messagestore "github.com/dalemusser/capstonehub/internal/app/store/messages"
	userstore "github.com/dalemusser/capstonehub/internal/app/store/users"
	"github.com/dalemusser/capstonehub/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the direct-message handlers.
type Handler struct {
	DB       *mongo.Database
	Messages *messagestore.Store
	Users    *userstore.Store
	Notify   *notify.Notifier
	Log      *zap.Logger
	ErrLog   *httpjson.ErrorLogger
}

// NewHandler constructs a messages Handler.
func NewHandler(db *mongo.Database, errLog *httpjson.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Messages: messagestore.New(db),
		Users:    userstore.New(db),
		Notify:   notify.New(db, logger),
		Log:      logger,
		ErrLog:   errLog,
	}
}
