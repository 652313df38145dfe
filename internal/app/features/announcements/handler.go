package announcements

import (
	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	announcementstore "github.com/dalemusser/capstonehub/internal/app/store/announcements"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the announcement handlers.
type Handler struct {
	DB            *mongo.Database
	Announcements *announcementstore.Store
	Log           *zap.Logger
	ErrLog        *httpjson.ErrorLogger
}

// NewHandler constructs an announcements Handler.
func NewHandler(db *mongo.Database, errLog *httpjson.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Announcements: announcementstore.New(db),
		Log:           logger,
		ErrLog:        errLog,
	}
}
