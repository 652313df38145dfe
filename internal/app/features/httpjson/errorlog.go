package httpjson

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with the JSON error envelope so
// handlers report failures in one line: the detailed message and error
// go to the log, the generic message goes to the client.
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs at error level and answers 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	Error(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest logs at warn level and answers 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	Error(w, http.StatusBadRequest, userMsg)
}

// LogUpstreamError logs at error level and answers 502.
func (e *ErrorLogger) LogUpstreamError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	Error(w, http.StatusBadGateway, userMsg)
}
