package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pzubov/products-api/internal/common"
	"github.com/pzubov/products-api/internal/logging"
	"github.com/pzubov/products-api/internal/server/models"
)

type authService interface {
	Login(ctx context.Context, email string, password string) (*models.User, string, error)
	Register(ctx context.Context, email string, password string, name string) (*models.User, string, error)
}

type passwordResetService interface {
	ForgotPassword(ctx context.Context, email string) (string, time.Time, error)
	ResetPassword(ctx context.Context, token string, newPassword string) (*models.User, error)
}

// AuthHandler serves login and the password-reset flow.
type AuthHandler struct {
	logger logging.Logger
	auth   authService
	reset  passwordResetService
}

func NewAuthHandler(l logging.Logger, a authService, p passwordResetService) *AuthHandler {
	return &AuthHandler{logger: l.With("module", "auth_handler"), auth: a, reset: p}
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.NewValidationError("Invalid request body")
	}
	return nil
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, newUserPayload(user, token))
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, expiresAt, err := h.reset.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	// The reset token goes back in the response body; there is no mailer in
	// this deployment and the caller is responsible for delivery.
	writeSuccess(w, http.StatusOK, map[string]any{
		"message":          "Reset link sent",
		"reset_token":      token,
		"token_expires_at": expiresAt,
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.reset.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"message": "Password has been successfully reset",
	})
}
