//go:generate mockgen -source=logout.go -destination=mock_logout.go -package=handlers

package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/pocket-notes/internal/services"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, sess *services.Session) error
}

// SessionReader reports the user of the active session.
type SessionReader interface {
	Username() (string, bool)
}

// SessionResponse describes the current session
// swagger:model SessionResponse
type SessionResponse struct {
	// Whether a user is logged in
	Active bool `json:"active"`

	// Logged in user, empty when inactive
	// default: alice
	Username string `json:"username,omitempty"`
}

// NewLogoutHandler returns an HTTP handler ending the active session.
// @Summary Logout
// @Description Ends the session. Tokens issued earlier stop being accepted.
// @Tags auth
// @Security BearerAuth
// @Success 204 "Logged out"
// @Failure 401 "Unauthorized"
// @Failure 503 {object} handlers.ErrorResponse "Storage unavailable"
// @Router /logout [post]
func NewLogoutHandler(svc Logouter, sess *services.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), sess); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// NewSessionHandler returns an HTTP handler reporting who is logged in.
// @Summary Current session
// @Description Reports the active user, e.g. one restored at startup
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.SessionResponse
// @Router /session [get]
func NewSessionHandler(sess SessionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := sess.Username()
		writeJSON(w, http.StatusOK, SessionResponse{Active: ok, Username: username})
	}
}
