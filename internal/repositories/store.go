//go:generate mockgen -source=store.go -destination=mock_store.go -package=repositories

package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sbilibin2017/pocket-notes/internal/logger"
)

// Storage keys. Note collections live under NotesKeyPrefix + owner.
const (
	UsersKey       = "USERS"
	CurrentUserKey = "CURRENT_USER"
	NotesKeyPrefix = "NOTES_"
)

// KVStore is the durable key-value adapter the repositories persist to.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// loadJSON reads key and decodes it into a T.
// An absent or undecodable entry yields the zero T; only store failures are returned.
func loadJSON[T any](ctx context.Context, store KVStore, key string) (T, error) {
	var out T

	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		logger.Log.Errorw("failed to read entry", "key", key, "error", err)
		return out, err
	}
	if !ok || raw == "" {
		return out, nil
	}

	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Log.Warnw("discarding unparsable entry", "key", key, "error", err)
		var zero T
		return zero, nil
	}
	return out, nil
}

func saveJSON(ctx context.Context, store KVStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	err = store.Set(ctx, key, string(data))
	logger.Log.Infow("entry stored",
		"key", key,
		"size", len(data),
		"error", err,
	)
	return err
}

// keyLocker serializes read-modify-write cycles on the same key.
type keyLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyLocker() *keyLocker {
	return &keyLocker{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for key and returns its release func.
func (l *keyLocker) lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
