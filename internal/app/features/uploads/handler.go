package uploads

import (
	"net/http"
	"time"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

const (
	maxUploadBytes           = 32 << 20 // 32 MB
	defaultRequestsPerMinute = 10
)

// Handler proxies image uploads to the image host. The host's API key
// stays server-side; clients only ever see the passed-through JSON.
type Handler struct {
	HostURL string
	APIKey  string

	Limiter *ratelimit.Limiter
	Client  *http.Client
	Log     *zap.Logger
	ErrLog  *httpjson.ErrorLogger
}

// NewHandler constructs an uploads Handler. An empty apiKey leaves the
// proxy mounted but unconfigured; requests then fail with 500.
// perMinute values of zero or below fall back to the default limit.
func NewHandler(hostURL, apiKey string, perMinute int, errLog *httpjson.ErrorLogger, logger *zap.Logger) *Handler {
	if perMinute <= 0 {
		perMinute = defaultRequestsPerMinute
	}
	return &Handler{
		HostURL: hostURL,
		APIKey:  apiKey,
		Limiter: ratelimit.New(perMinute, time.Minute),
		Client:  &http.Client{},
		Log:     logger,
		ErrLog:  errLog,
	}
}
