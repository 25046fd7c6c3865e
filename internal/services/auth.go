//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sbilibin2017/pocket-notes/internal/logger"
	"github.com/sbilibin2017/pocket-notes/internal/models"
	"github.com/sbilibin2017/pocket-notes/internal/repositories"
)

// Error variables
var (
	ErrEmptyCredentials   = errors.New("username and PIN are required")
	ErrNotLoggedIn        = errors.New("no user logged in")
	ErrUsernameTaken      = repositories.ErrUsernameTaken
	ErrInvalidCredentials = repositories.ErrInvalidCredentials
)

// AccountStore defines the account operations the auth service relies on.
type AccountStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	RegisterUser(ctx context.Context, username, pin string) error
	Authenticate(ctx context.Context, username, pin string) (models.User, error)
	SetCurrentUser(ctx context.Context, username string) error
	GetCurrentUser(ctx context.Context) (string, error)
}

// AuthService handles sign up, login and logout for a Session.
type AuthService struct {
	accounts AccountStore
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(accounts AccountStore) *AuthService {
	return &AuthService{accounts: accounts}
}

// SignUp registers a new user and logs them in.
func (svc *AuthService) SignUp(ctx context.Context, sess *Session, username, pin string) error {
	username = strings.TrimSpace(username)
	if username == "" || pin == "" {
		return ErrEmptyCredentials
	}

	if err := svc.accounts.RegisterUser(ctx, username, pin); err != nil {
		if !errors.Is(err, ErrUsernameTaken) {
			logger.Log.Errorw("failed to register user", "username", username, "err", err)
		}
		return err
	}

	return svc.start(ctx, sess, username)
}

// Login authenticates a user and makes them the session's owner.
// On failure the session is left as it was.
func (svc *AuthService) Login(ctx context.Context, sess *Session, username, pin string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || pin == "" {
		return "", ErrEmptyCredentials
	}

	user, err := svc.accounts.Authenticate(ctx, username, pin)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Log.Infow("invalid credentials", "username", username)
		} else {
			logger.Log.Errorw("failed to authenticate", "username", username, "err", err)
		}
		return "", err
	}

	if err := svc.start(ctx, sess, user.Username); err != nil {
		return "", err
	}
	return user.Username, nil
}

// Logout clears the stored pointer and ends the session.
func (svc *AuthService) Logout(ctx context.Context, sess *Session) error {
	if err := svc.accounts.SetCurrentUser(ctx, ""); err != nil {
		logger.Log.Errorw("failed to clear current user", "err", err)
		return err
	}
	sess.end()
	return nil
}

// Restore loads the persisted pointer into sess. A pointer naming a user
// that is not registered is cleared.
func (svc *AuthService) Restore(ctx context.Context, sess *Session) (string, error) {
	username, err := svc.accounts.GetCurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if username == "" {
		sess.end()
		return "", nil
	}

	users, err := svc.accounts.ListUsers(ctx)
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			sess.begin(u.Username)
			logger.Log.Infow("session restored", "username", u.Username)
			return u.Username, nil
		}
	}

	logger.Log.Warnw("stored current user is not registered, clearing", "username", username)
	if err := svc.accounts.SetCurrentUser(ctx, ""); err != nil {
		return "", err
	}
	sess.end()
	return "", nil
}

func (svc *AuthService) start(ctx context.Context, sess *Session, username string) error {
	if err := svc.accounts.SetCurrentUser(ctx, username); err != nil {
		logger.Log.Errorw("failed to store current user", "username", username, "err", err)
		return err
	}
	sess.begin(username)
	logger.Log.Infow("session started", "username", username)
	return nil
}
