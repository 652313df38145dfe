package chat

import (
	"net/http"
	"time"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

const (
	maxMessages   = 50
	maxMessageLen = 4000

	defaultRequestsPerMinute = 20
)

// Handler proxies chat requests to the completion API. The server
// never exposes the upstream key to clients.
type Handler struct {
	UpstreamURL string
	APIKey      string
	Model       string

	Limiter *ratelimit.Limiter
	Client  *http.Client
	Log     *zap.Logger
	ErrLog  *httpjson.ErrorLogger
}

// NewHandler constructs a chat Handler. An empty apiKey leaves the
// proxy mounted but unconfigured; requests then fail with 500.
// perMinute values of zero or below fall back to the default limit.
func NewHandler(upstreamURL, apiKey, model string, perMinute int, errLog *httpjson.ErrorLogger, logger *zap.Logger) *Handler {
	if perMinute <= 0 {
		perMinute = defaultRequestsPerMinute
	}
	return &Handler{
		UpstreamURL: upstreamURL,
		APIKey:      apiKey,
		Model:       model,
		Limiter:     ratelimit.New(perMinute, time.Minute),
		Client:      &http.Client{},
		Log:         logger,
		ErrLog:      errLog,
	}
}
