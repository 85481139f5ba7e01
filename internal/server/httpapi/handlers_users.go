package httpapi

import (
	"net/http"

	"github.com/pzubov/products-api/internal/logging"
)

// UserHandler serves account registration.
type UserHandler struct {
	logger logging.Logger
	auth   authService
}

func NewUserHandler(l logging.Logger, a authService) *UserHandler {
	return &UserHandler{logger: l.With("module", "user_handler"), auth: a}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, newUserPayload(user, token))
}
