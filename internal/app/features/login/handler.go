package login

import (
	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	userstore "github.com/dalemusser/capstonehub/internal/app/store/users"
	"github.com/dalemusser/capstonehub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns password login, registration, and logout.
type Handler struct {
	DB      *mongo.Database
	Users   *userstore.Store
	Limiter *ratelimit.LoginLimiter
	Log     *zap.Logger
	ErrLog  *httpjson.ErrorLogger
}

// NewHandler constructs a login Handler.
func NewHandler(db *mongo.Database, limiter *ratelimit.LoginLimiter, errLog *httpjson.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Users:   userstore.New(db),
		Limiter: limiter,
		Log:     logger,
		ErrLog:  errLog,
	}
}
