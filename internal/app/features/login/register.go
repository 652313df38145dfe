package login

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	userstore "github.com/dalemusser/capstonehub/internal/app/store/users"
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/dalemusser/capstonehub/internal/app/system/inputval"
	"github.com/dalemusser/capstonehub/internal/app/system/normalize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	FullName string `json:"full_name" validate:"required,max=200" label:"Full name"`
	Email    string `json:"email" validate:"required,email,max=254" label:"Email"`
	Password string `json:"password" validate:"required,min=8,max=128" label:"Password"`
	Role     string `json:"role" validate:"omitempty,oneof=student" label:"Role"`
}

// Register handles POST /api/register. Self-service registration only
// creates students; supervisor and coordinator accounts are provisioned
// by a coordinator.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "register: decode failed", err, "Invalid request body.")
		return
	}

	req.FullName = normalize.Name(req.FullName)
	req.Email = normalize.Email(req.Email)

	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	role := roleOrStudent(req.Role)
	if role == "" {
		httpjson.Error(w, http.StatusBadRequest, "Only student accounts can self-register.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "register: hash failed", err, "Unable to create the account.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         role,
		PasswordHash: string(hash),
		AuthMethod:   "password",
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Error(w, http.StatusConflict, "An account with this email already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "register: create failed", err, "Unable to create the account.")
		return
	}

	if err := auth.SignIn(w, r, &auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.FullName,
		Email: user.Email,
		Role:  string(user.Role),
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "register: session write failed", err, "Account created; sign in to continue.")
		return
	}

	h.Log.Info("user registered", zap.String("user_id", user.ID.Hex()))

	httpjson.Respond(w, http.StatusCreated, loginResponse{
		ID:       user.ID.Hex(),
		FullName: user.FullName,
		Email:    user.Email,
		Role:     string(user.Role),
	})
}
