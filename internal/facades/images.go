package facades

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sbilibin2017/pocket-notes/internal/logger"
)

// ErrPermissionDenied is returned when the picker may not read a source directory.
var ErrPermissionDenied = errors.New("image access permission denied")

// FilesystemPicker implements image acquisition over two local directories:
// the gallery is browsed by file name, the camera yields its newest shot.
type FilesystemPicker struct {
	galleryDir string
	cameraDir  string
}

// NewFilesystemPicker creates a picker. An empty directory disables that source.
func NewFilesystemPicker(galleryDir, cameraDir string) *FilesystemPicker {
	return &FilesystemPicker{galleryDir: galleryDir, cameraDir: cameraDir}
}

// PickFromGallery returns the path of name inside the gallery directory.
// An empty name or a missing file means nothing was picked.
func (p *FilesystemPicker) PickFromGallery(ctx context.Context, name string) (string, error) {
	if p.galleryDir == "" {
		return "", ErrPermissionDenied
	}
	if name == "" {
		return "", nil
	}

	path := filepath.Join(p.galleryDir, filepath.Base(name))
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Log.Infow("gallery image not found", "name", name)
		return "", nil
	case err != nil:
		return "", mapFSError(err)
	case !info.Mode().IsRegular():
		return "", nil
	}

	return path, nil
}

// TakePhoto returns the most recently modified file in the camera directory.
func (p *FilesystemPicker) TakePhoto(ctx context.Context) (string, error) {
	if p.cameraDir == "" {
		return "", ErrPermissionDenied
	}

	entries, err := os.ReadDir(p.cameraDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", mapFSError(err)
	}

	var (
		newest  string
		newestT int64
	)
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if t := info.ModTime().UnixNano(); newest == "" || t > newestT {
			newest, newestT = e.Name(), t
		}
	}

	if newest == "" {
		return "", nil
	}
	return filepath.Join(p.cameraDir, newest), nil
}

func mapFSError(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return err
}
