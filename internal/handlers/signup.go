//go:generate mockgen -source=signup.go -destination=mock_signup.go -package=handlers

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sbilibin2017/pocket-notes/internal/services"
)

// SignUpper defines the interface that the sign up service must implement.
type SignUpper interface {
	SignUp(ctx context.Context, sess *services.Session, username, pin string) error
}

// TokenGenerator issues a session token for a username.
type TokenGenerator interface {
	Generate(ctx context.Context, username string) (string, error)
}

// CredentialsRequest represents the JSON body for sign up and login
// swagger:model CredentialsRequest
type CredentialsRequest struct {
	// Username
	// required: true
	// default: alice
	Username string `json:"username"`

	// PIN
	// required: true
	// default: 1234
	PIN string `json:"pin"`
}

// TokenResponse represents a successful sign up or login
// swagger:model TokenResponse
type TokenResponse struct {
	// Username as it was registered
	// default: alice
	Username string `json:"username"`

	// JWT token
	// default: JWT_TOKEN
	Token string `json:"token"`
}

// NewSignUpHandler returns an HTTP handler for user registration.
// @Summary Sign up
// @Description Registers a new user and logs them in. Usernames are unique ignoring case.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body handlers.CredentialsRequest true "Sign up request"
// @Success 201 {object} handlers.TokenResponse "User registered and logged in"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request / empty credentials"
// @Failure 409 {object} handlers.ErrorResponse "Username already taken"
// @Failure 503 {object} handlers.ErrorResponse "Storage unavailable"
// @Router /signup [post]
func NewSignUpHandler(svc SignUpper, sess *services.Session, tokener TokenGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
			return
		}

		if err := svc.SignUp(r.Context(), sess, req.Username, req.PIN); err != nil {
			writeError(w, err)
			return
		}

		username := strings.TrimSpace(req.Username)
		token, err := tokener.Generate(r.Context(), username)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, TokenResponse{Username: username, Token: token})
	}
}
