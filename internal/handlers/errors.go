package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/pocket-notes/internal/facades"
	"github.com/sbilibin2017/pocket-notes/internal/kv"
	"github.com/sbilibin2017/pocket-notes/internal/logger"
	"github.com/sbilibin2017/pocket-notes/internal/services"
)

// ErrorResponse represents an error returned by any endpoint
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

const msgInvalidBody = "invalid request body"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a service error to its status code and message.
func writeError(w http.ResponseWriter, err error) {
	var (
		status int
		msg    string
	)

	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		status, msg = http.StatusConflict, "Username already taken"
	case errors.Is(err, services.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid username or PIN"
	case errors.Is(err, services.ErrNotLoggedIn):
		status, msg = http.StatusUnauthorized, "Not logged in"
	case errors.Is(err, services.ErrEmptyCredentials):
		status, msg = http.StatusBadRequest, "Username and PIN are required"
	case errors.Is(err, services.ErrEmptyNote):
		status, msg = http.StatusBadRequest, "Note needs a title or body"
	case errors.Is(err, services.ErrNoteNotFound):
		status, msg = http.StatusNotFound, "Note not found"
	case errors.Is(err, facades.ErrPermissionDenied):
		status, msg = http.StatusForbidden, "Permission denied"
	case errors.Is(err, kv.ErrStorageUnavailable):
		logger.Log.Errorw("storage unavailable", "err", err)
		status, msg = http.StatusServiceUnavailable, "Storage unavailable"
	default:
		logger.Log.Errorw("internal server error", "err", err)
		status, msg = http.StatusInternalServerError, "Internal server error"
	}

	writeJSON(w, status, ErrorResponse{Error: msg})
}
