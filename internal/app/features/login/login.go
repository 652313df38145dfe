package login

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/dalemusser/capstonehub/internal/app/system/normalize"
	"github.com/dalemusser/capstonehub/internal/app/system/ratelimit"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Login handles POST /api/login.
//
// The lockout guard runs before the credential check: a locked account
// or throttled IP answers 429 with retry_after seconds, and the
// password is never verified while locked.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "login: decode failed", err, "Invalid request body.")
		return
	}

	email := normalize.Email(req.Email)
	if email == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	ip := ratelimit.ClientIP(r)
	decision := h.Limiter.Check(ip, email)
	if !decision.Allowed {
		h.Log.Warn("login blocked",
			zap.String("ip", ip),
			zap.Duration("retry_after", decision.RetryAfter))
		httpjson.TooManyRequests(w, "Too many login attempts. Try again later.",
			int(decision.RetryAfter.Seconds())+1)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Limiter.RecordFailure(email)
			httpjson.Error(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		h.ErrLog.LogServerError(w, r, "login: lookup failed", err, "A database error occurred.")
		return
	}

	if user.Status == "disabled" {
		httpjson.Error(w, http.StatusForbidden, "This account is disabled.")
		return
	}
	if user.PasswordHash == "" {
		// Provisioned through the identity provider; no password set.
		h.Limiter.RecordFailure(email)
		httpjson.Error(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.Limiter.RecordFailure(email)
		h.Log.Warn("login failed", zap.String("ip", ip))
		httpjson.Error(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	h.Limiter.ResetLoginAttempts(email)

	if err := auth.SignIn(w, r, &auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.FullName,
		Email: user.Email,
		Role:  string(user.Role),
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "login: session write failed", err, "Unable to start a session.")
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", string(user.Role)))

	httpjson.Respond(w, http.StatusOK, loginResponse{
		ID:       user.ID.Hex(),
		FullName: user.FullName,
		Email:    user.Email,
		Role:     string(user.Role),
	})
}

// Logout handles POST /api/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.ErrLog.LogServerError(w, r, "logout: session clear failed", err, "Unable to sign out.")
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// roleOrStudent validates a requested role, defaulting to student.
// Staff roles cannot be self-assigned through registration.
func roleOrStudent(requested string) models.Role {
	if requested == "" {
		return models.RoleStudent
	}
	role := models.Role(requested)
	if role == models.RoleStudent {
		return role
	}
	return ""
}
