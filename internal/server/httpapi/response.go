package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pzubov/products-api/internal/common"
)

// Every response is wrapped in the same envelope: successful calls carry
// "data" (plus optional "meta" for collections), failures carry a machine
// readable code and a user facing message.
type successEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
	Meta   any    `json:"meta,omitempty"`
}

type errorEnvelope struct {
	Status string    `json:"status"`
	Error  errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Status: "success", Data: data})
}

func writeSuccessMeta(w http.ResponseWriter, status int, data any, meta any) {
	writeJSON(w, status, successEnvelope{Status: "success", Data: data, Meta: meta})
}

func writeErrorCode(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorEnvelope{Status: "error", Error: errorBody{Code: code, Message: message}})
}

// writeError maps domain errors onto the wire taxonomy. Handlers that need a
// resource-specific code (products) translate before calling this.
func writeError(w http.ResponseWriter, err error) {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_INPUT", ve.Message)
		return
	}

	switch {
	case errors.Is(err, common.ErrorInvalidCredentials):
		writeErrorCode(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password")
	case errors.Is(err, common.ErrAuthRequired):
		writeErrorCode(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case errors.Is(err, common.ErrForbidden):
		writeErrorCode(w, http.StatusForbidden, "FORBIDDEN", "Only admin can perform this action")
	case errors.Is(err, common.ErrorEmailExists):
		writeErrorCode(w, http.StatusConflict, "EMAIL_ALREADY_EXISTS", "Email already registered")
	case errors.Is(err, common.ErrEmailNotFound):
		writeErrorCode(w, http.StatusBadRequest, "INVALID_EMAIL", "Email not found")
	case errors.Is(err, common.ErrWeakPassword):
		writeErrorCode(w, http.StatusBadRequest, "INVALID_PASSWORD", "Password must be at least 8 characters")
	case errors.Is(err, common.ErrInvalidToken):
		writeErrorCode(w, http.StatusBadRequest, "INVALID_TOKEN", "Invalid or already used reset token")
	case errors.Is(err, common.ErrTokenExpired):
		writeErrorCode(w, http.StatusBadRequest, "EXPIRED_TOKEN", "Reset token has expired")
	case errors.Is(err, common.ErrorNotFound):
		writeErrorCode(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	default:
		writeErrorCode(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
