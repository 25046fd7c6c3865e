package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "CURRENT_USER", `{"username":"alice"}`))
	require.NoError(t, s.Set(ctx, "NOTES_alice", `[]`))
	require.NoError(t, s.Remove(ctx, "NOTES_alice"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	v, ok, err := reopened.Get(ctx, "CURRENT_USER")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"username":"alice"}`, v)

	_, ok, err = reopened.Get(ctx, "NOTES_alice")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_EmptyAndCorruptFiles(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	s, err := NewFileStore(empty)
	require.NoError(t, err)
	_, ok, _ := s.Get(context.Background(), "USERS")
	assert.False(t, ok)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o600))
	_, err = NewFileStore(corrupt)
	assert.Error(t, err)
}

func TestFileStore_WriteFailureKeepsPreviousValue(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, "store.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "USERS", "[]"))

	require.NoError(t, os.RemoveAll(dir))

	err = s.Set(ctx, "USERS", `[{"username":"bob","pin":"1"}]`)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	v, ok, err := s.Get(ctx, "USERS")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	err = s.Remove(ctx, "USERS")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	_, ok, _ = s.Get(ctx, "USERS")
	assert.True(t, ok)
}
