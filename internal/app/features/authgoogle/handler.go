package authgoogle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	userstore "github.com/dalemusser/capstonehub/internal/app/store/users"
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/dalemusser/capstonehub/internal/app/system/normalize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	stateCookieName = "capstonehub-oauth-state"
	stateTTL        = 10 * time.Minute
)

// Handler handles Google OAuth sign-in. Unknown verified emails are
// provisioned as student accounts; existing accounts are linked by
// email.
type Handler struct {
	DB    *mongo.Database
	Users *userstore.Store
	Log   *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string

	codec *securecookie.SecureCookie
}

// NewHandler creates a Google OAuth handler. The state cookie is signed
// with the session key so it cannot be forged.
func NewHandler(db *mongo.Database, clientID, clientSecret, baseURL, sessionKey string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Users:        userstore.New(db),
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
		codec:        securecookie.New([]byte(sessionKey), nil),
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin handles GET /auth/google: sets the signed state cookie and
// redirects to Google's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state := uuid.NewString()
	encoded, err := h.codec.Encode(stateCookieName, state)
	if err != nil {
		h.Log.Error("failed to sign OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    encoded,
		Path:     "/auth/google",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /auth/google/callback: validates state,
// exchanges the code, fetches the Google profile, and signs the user
// in, creating a student account on first sign-in.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	if !h.validState(r) {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}
	h.clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(r.Context(), code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	profile, err := fetchGoogleUserInfo(r.Context(), token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}
	if !profile.EmailVerified {
		h.Log.Warn("Google account email not verified")
		http.Redirect(w, r, "/login?error=email_unverified", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.findOrProvision(ctx, profile)
	if err != nil {
		if errors.Is(err, errUserDisabled) {
			http.Redirect(w, r, "/login?error=account_disabled", http.StatusSeeOther)
			return
		}
		h.Log.Error("failed to resolve Google user", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	if err := auth.SignIn(w, r, &auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.FullName,
		Email: user.Email,
		Role:  string(user.Role),
	}); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		http.Redirect(w, r, "/login?error=session", http.StatusSeeOther)
		return
	}

	h.Log.Info("user signed in via Google",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", string(user.Role)))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

var errUserDisabled = fmt.Errorf("user disabled")

// findOrProvision resolves the Google profile to a local user, creating
// a student account on first sign-in with a verified email.
func (h *Handler) findOrProvision(ctx context.Context, profile *googleUserInfo) (models.User, error) {
	user, err := h.Users.GetByEmail(ctx, profile.Email)
	if err == nil {
		if user.Status == "disabled" {
			return models.User{}, errUserDisabled
		}
		return user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, err
	}

	created, err := h.Users.Create(ctx, models.User{
		FullName:   normalize.Name(profile.Name),
		Email:      normalize.Email(profile.Email),
		Role:       models.RoleStudent,
		AuthMethod: "google",
		AvatarURL:  profile.Picture,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			// Raced with another callback; read the winner.
			return h.Users.GetByEmail(ctx, profile.Email)
		}
		return models.User{}, err
	}
	h.Log.Info("provisioned student from Google sign-in", zap.String("user_id", created.ID.Hex()))
	return created, nil
}

func (h *Handler) validState(r *http.Request) bool {
	state := r.URL.Query().Get("state")
	if state == "" {
		return false
	}
	cookie, err := r.Cookie(stateCookieName)
	if err != nil {
		return false
	}
	var stored string
	if err := h.codec.Decode(stateCookieName, cookie.Value, &stored); err != nil {
		return false
	}
	return stored == state
}

func (h *Handler) clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/auth/google",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}
