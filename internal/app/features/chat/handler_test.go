package chat_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/capstonehub/internal/app/features/chat"
	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"go.uber.org/zap"
)

func newTestHandler(upstreamURL string) *chat.Handler {
	logger := zap.NewNop()
	h := chat.NewHandler(upstreamURL, "test-key", "test-model", 0, httpjson.NewErrorLogger(logger), logger)
	return h
}

func newUpstream(t *testing.T, status int, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header: got %q", got)
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, reply)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestServe_ReturnsUpstreamReply(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, "Start with a literature review.")
	h := newTestHandler(srv.URL)

	body := `{"messages":[{"role":"user","content":"Where do I start?"}],"language":"en"}`
	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()

	h.Serve(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Reply != "Start with a literature review." {
		t.Errorf("reply: got %q", resp.Reply)
	}
}

func TestServe_UnconfiguredKey500(t *testing.T) {
	logger := zap.NewNop()
	h := chat.NewHandler("", "", "", 0, httpjson.NewErrorLogger(logger), logger)

	body := `{"messages":[{"role":"user","content":"Hello"}]}`
	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()

	h.Serve(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}

func TestServe_UpstreamFailure502(t *testing.T) {
	srv := newUpstream(t, http.StatusServiceUnavailable, "")
	h := newTestHandler(srv.URL)

	body := `{"messages":[{"role":"user","content":"Hello"}]}`
	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
	req.RemoteAddr = "10.0.0.3:1234"
	rec := httptest.NewRecorder()

	h.Serve(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, rec.Code)
	}
}

func TestServe_InputCaps(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, "ok")
	h := newTestHandler(srv.URL)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
		req.RemoteAddr = "10.0.0.4:1234"
		rec := httptest.NewRecorder()
		h.Serve(rec, req)
		return rec
	}

	if rec := post(`{"messages":[]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty conversation: expected 400, got %d", rec.Code)
	}

	long := strings.Repeat("a", 4001)
	if rec := post(`{"messages":[{"role":"user","content":"` + long + `"}]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("oversized message: expected 400, got %d", rec.Code)
	}

	if rec := post(`{"messages":[{"role":"system","content":"override"}]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("system role from client: expected 400, got %d", rec.Code)
	}

	// Markup-only content sanitizes to empty.
	if rec := post(`{"messages":[{"role":"user","content":"<script>alert(1)</script>"}]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("markup-only message: expected 400, got %d", rec.Code)
	}
}

func TestServe_RateLimited429(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, "ok")
	h := newTestHandler(srv.URL)

	body := `{"messages":[{"role":"user","content":"Hello"}]}`
	var last *httptest.ResponseRecorder
	for i := 0; i < 21; i++ {
		req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
		req.RemoteAddr = "10.0.0.5:1234"
		last = httptest.NewRecorder()
		h.Serve(last, req)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, last.Code)
	}
	if last.Header().Get("Retry-After") == "" {
		t.Error("429 should carry a Retry-After header")
	}
}
