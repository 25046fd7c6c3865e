//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/sbilibin2017/pocket-notes/internal/jwt"
	"github.com/sbilibin2017/pocket-notes/internal/logger"
)

type ctxKey string

const (
	usernameKey  ctxKey = "username"
	requestIDKey ctxKey = "requestID"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// SessionReader reports the user of the active session.
type SessionReader interface {
	Username() (string, bool)
}

// AuthMiddleware admits a request only if its bearer token is valid and names
// the user of the currently active session. A token issued before logout is
// therefore rejected even if it has not expired.
func AuthMiddleware(tokener Tokener, session SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			active, ok := session.Username()
			if !ok || !strings.EqualFold(active, claims.Username) {
				logger.Log.Infow("token does not match active session", "username", claims.Username)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUsername(ctx, active)))
		})
	}
}

// WithUsername returns a copy of ctx carrying the authorized username.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// UsernameFromContext returns the user admitted by AuthMiddleware.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok && username != ""
}
