package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sbilibin2017/pocket-notes/internal/logger"
	"github.com/sbilibin2017/pocket-notes/internal/models"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or PIN")
)

// AccountRepository keeps the user registry and the current-user pointer.
type AccountRepository struct {
	store KVStore
	pins  PinMatcher
	locks *keyLocker
}

// NewAccountRepository creates a repository over store. A nil pins stores PINs as given.
func NewAccountRepository(store KVStore, pins PinMatcher) *AccountRepository {
	if pins == nil {
		pins = PlainPins{}
	}
	return &AccountRepository{
		store: store,
		pins:  pins,
		locks: newKeyLocker(),
	}
}

// ListUsers returns every registered user in registration order.
func (r *AccountRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := loadJSON[[]models.User](ctx, r.store, UsersKey)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// RegisterUser appends a new user unless the username is taken, ignoring case.
func (r *AccountRepository) RegisterUser(ctx context.Context, username, pin string) error {
	unlock := r.locks.lock(UsersKey)
	defer unlock()

	users, err := r.ListUsers(ctx)
	if err != nil {
		return err
	}
	if _, ok := findUser(users, username); ok {
		logger.Log.Infow("username taken", "username", username)
		return ErrUsernameTaken
	}

	sealed, err := r.pins.Seal(pin)
	if err != nil {
		return fmt.Errorf("seal pin: %w", err)
	}

	users = append(users, models.User{Username: username, PIN: sealed})
	if err := saveJSON(ctx, r.store, UsersKey, users); err != nil {
		return fmt.Errorf("register user: %w", err)
	}

	logger.Log.Infow("user registered", "username", username, "users", len(users))
	return nil
}

// Authenticate returns the stored user when username matches ignoring case
// and pin matches exactly. Any mismatch is ErrInvalidCredentials.
func (r *AccountRepository) Authenticate(ctx context.Context, username, pin string) (models.User, error) {
	users, err := r.ListUsers(ctx)
	if err != nil {
		return models.User{}, err
	}

	u, ok := findUser(users, username)
	if !ok || !r.pins.Match(u.PIN, pin) {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// SetCurrentUser stores the session pointer. An empty username clears it.
func (r *AccountRepository) SetCurrentUser(ctx context.Context, username string) error {
	unlock := r.locks.lock(CurrentUserKey)
	defer unlock()

	if username == "" {
		err := r.store.Remove(ctx, CurrentUserKey)
		logger.Log.Infow("current user cleared", "error", err)
		if err != nil {
			return fmt.Errorf("clear current user: %w", err)
		}
		return nil
	}

	if err := saveJSON(ctx, r.store, CurrentUserKey, models.CurrentUser{Username: username}); err != nil {
		return fmt.Errorf("set current user: %w", err)
	}
	return nil
}

// GetCurrentUser returns the stored session pointer, or "" when logged out.
func (r *AccountRepository) GetCurrentUser(ctx context.Context) (string, error) {
	cur, err := loadJSON[*models.CurrentUser](ctx, r.store, CurrentUserKey)
	if err != nil {
		return "", fmt.Errorf("get current user: %w", err)
	}
	if cur == nil {
		return "", nil
	}
	return cur.Username, nil
}

func findUser(users []models.User, username string) (models.User, bool) {
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return models.User{}, false
}
