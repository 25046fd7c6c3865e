// Package kv provides the string-keyed, string-valued durable stores the
// repositories persist users, the session pointer and note collections in.
//
// Every implementation completes Set and Remove only after the change is
// durable for that backend. Backend failures are reported wrapped with
// ErrStorageUnavailable so callers can tell them apart from missing keys.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrStorageUnavailable wraps every failure of the underlying backend.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store is the key-value adapter contract.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error
}

func unavailable(op, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %v", ErrStorageUnavailable, op, key, err)
}
