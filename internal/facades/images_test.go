package facades

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickFromGallery(t *testing.T) {
	gallery := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(gallery, "cat.png"), []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(gallery, "album"), 0o700))

	picker := NewFilesystemPicker(gallery, "")

	tests := []struct {
		name string
		pick string
		want string
	}{
		{name: "existing file", pick: "cat.png", want: filepath.Join(gallery, "cat.png")},
		{name: "nothing picked", pick: "", want: ""},
		{name: "missing file", pick: "dog.png", want: ""},
		{name: "directory", pick: "album", want: ""},
		{name: "path escapes are flattened", pick: "../../cat.png", want: filepath.Join(gallery, "cat.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := picker.PickFromGallery(context.Background(), tt.pick)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPickers_Unconfigured(t *testing.T) {
	picker := NewFilesystemPicker("", "")

	_, err := picker.PickFromGallery(context.Background(), "cat.png")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = picker.TakePhoto(context.Background())
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestTakePhoto(t *testing.T) {
	camera := t.TempDir()
	picker := NewFilesystemPicker("", camera)

	got, err := picker.TakePhoto(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got, "empty camera roll")

	old := filepath.Join(camera, "old.jpg")
	recent := filepath.Join(camera, "recent.jpg")
	require.NoError(t, os.WriteFile(old, []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(recent, []byte("b"), 0o600))
	now := time.Now()
	require.NoError(t, os.Chtimes(old, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(recent, now, now))

	got, err = picker.TakePhoto(context.Background())
	require.NoError(t, err)
	assert.Equal(t, recent, got)

	got, err = NewFilesystemPicker("", filepath.Join(camera, "missing")).TakePhoto(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
