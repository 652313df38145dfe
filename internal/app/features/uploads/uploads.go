package uploads

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/ratelimit"
	"github.com/dalemusser/capstonehub/internal/app/system/sanitize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Serve handles POST /api/upload-image. The multipart form carries the
// base64 image in the "image" field and an optional "name". The stored
// name is the sanitized client name prefixed with a uuid so collisions
// cannot clobber another upload.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ClientIP(r)
	if !h.Limiter.Allow(ip) {
		retry := int(h.Limiter.RetryAfter(ip).Seconds()) + 1
		httpjson.TooManyRequests(w, "Too many uploads. Please wait before trying again.", retry)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpjson.Error(w, http.StatusRequestEntityTooLarge, "Uploads are capped at 32 MB.")
			return
		}
		h.ErrLog.LogBadRequest(w, r, "upload: parse form failed", err, "Invalid upload form.")
		return
	}

	image := r.FormValue("image")
	if image == "" {
		httpjson.Error(w, http.StatusBadRequest, "The image field is required.")
		return
	}

	if h.APIKey == "" || h.HostURL == "" {
		h.Log.Error("upload request with unconfigured image host")
		httpjson.Error(w, http.StatusInternalServerError, "The upload service is not configured.")
		return
	}

	name := sanitize.Filename(r.FormValue("name"))
	key := uuid.NewString() + "_" + name

	status, body, err := h.forward(r.Context(), image, key)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "upload: image host call failed", err,
			"The upload service is unavailable. Please try again later.")
		return
	}

	h.Log.Info("image uploaded",
		zap.String("name", key),
		zap.Int("upstream_status", status))

	// The image host's JSON response is passed through as-is.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// forward posts the image to the host as a multipart form and returns
// the upstream status and body.
func (h *Handler) forward(ctx context.Context, image, name string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Upstream())
	defer cancel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, value := range map[string]string{
		"key":   h.APIKey,
		"image": image,
		"name":  name,
	} {
		if err := mw.WriteField(field, value); err != nil {
			return 0, nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.HostURL, &buf)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := h.Client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, err
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "json") {
		// A non-JSON body means the host itself is broken; do not
		// forward whatever it sent.
		return resp.StatusCode, []byte(`{"error":"unexpected upstream response"}`), nil
	}
	return resp.StatusCode, body, nil
}
