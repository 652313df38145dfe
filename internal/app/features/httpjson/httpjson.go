// Package httpjson holds the JSON request/response conventions shared
// by every feature: encode helpers, a body decoder with a size cap,
// and the error envelope {"error": "..."} clients rely on.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes caps JSON request bodies. Large payloads (file uploads)
// go through multipart endpoints, not JSON.
const maxBodyBytes = 1 << 20 // 1 MiB

// Respond writes v as JSON with the given status.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the error envelope for all failed requests.
type errorBody struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after,omitempty"`
}

// Error writes the standard error envelope.
func Error(w http.ResponseWriter, status int, msg string) {
	Respond(w, status, errorBody{Error: msg})
}

// TooManyRequests writes a 429 with both the Retry-After header and
// the retry_after body field, in whole seconds.
func TooManyRequests(w http.ResponseWriter, msg string, retryAfterSeconds int) {
	if retryAfterSeconds < 1 {
		retryAfterSeconds = 1
	}
	w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfterSeconds))
	Respond(w, http.StatusTooManyRequests, errorBody{Error: msg, RetryAfter: retryAfterSeconds})
}

// Decode reads the request body into dst. It rejects bodies over the
// size cap and trailing garbage after the JSON value.
func Decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	_, _ = io.Copy(io.Discard, r.Body)
	return nil
}
