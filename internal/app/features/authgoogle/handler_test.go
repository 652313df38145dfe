package authgoogle_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/capstonehub/internal/app/features/authgoogle"
	"github.com/dalemusser/capstonehub/internal/testutil"
	"go.uber.org/zap"
)

const testSessionKey = "test-session-key-for-testing-only-0123"

func TestServeLogin_RedirectsToGoogle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := authgoogle.NewHandler(db, "client-id", "client-secret",
		"http://localhost:8080", testSessionKey, zap.NewNop())

	req := httptest.NewRequest("GET", "/auth/google", nil)
	rec := httptest.NewRecorder()

	h.ServeLogin(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected status %d, got %d", http.StatusTemporaryRedirect, rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.Contains(location, "accounts.google.com") {
		t.Errorf("Location = %q, want Google consent URL", location)
	}
	if !strings.Contains(location, "state=") {
		t.Errorf("Location = %q, want a state parameter", location)
	}

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "capstonehub-oauth-state" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected a signed state cookie")
	}
}

func TestServeLogin_NotConfigured(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := authgoogle.NewHandler(db, "", "", "http://localhost:8080", testSessionKey, zap.NewNop())

	req := httptest.NewRequest("GET", "/auth/google", nil)
	rec := httptest.NewRecorder()

	h.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Location"), "google_not_configured") {
		t.Errorf("Location = %q, want not-configured error", rec.Header().Get("Location"))
	}
}

func TestServeCallback_MissingState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := authgoogle.NewHandler(db, "client-id", "client-secret",
		"http://localhost:8080", testSessionKey, zap.NewNop())

	req := httptest.NewRequest("GET", "/auth/google/callback?code=abc", nil)
	rec := httptest.NewRecorder()

	h.ServeCallback(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Location"), "invalid_state") {
		t.Errorf("Location = %q, want invalid_state error", rec.Header().Get("Location"))
	}
}

func TestServeCallback_ProviderError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := authgoogle.NewHandler(db, "client-id", "client-secret",
		"http://localhost:8080", testSessionKey, zap.NewNop())

	req := httptest.NewRequest("GET", "/auth/google/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()

	h.ServeCallback(rec, req)

	if !strings.Contains(rec.Header().Get("Location"), "google_denied") {
		t.Errorf("Location = %q, want google_denied error", rec.Header().Get("Location"))
	}
}
