//go:generate mockgen -source=login.go -destination=mock_login.go -package=handlers

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/pocket-notes/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, sess *services.Session, username, pin string) (string, error)
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user (username ignoring case, exact PIN) and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body handlers.CredentialsRequest true "Login request"
// @Success 200 {object} handlers.TokenResponse "JWT token returned"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Invalid username or PIN"
// @Failure 503 {object} handlers.ErrorResponse "Storage unavailable"
// @Router /login [post]
func NewLoginHandler(svc Loginer, sess *services.Session, tokener TokenGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
			return
		}

		username, err := svc.Login(r.Context(), sess, req.Username, req.PIN)
		if err != nil {
			writeError(w, err)
			return
		}

		token, err := tokener.Generate(r.Context(), username)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, TokenResponse{Username: username, Token: token})
	}
}
