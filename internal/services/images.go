//go:generate mockgen -source=images.go -destination=mock_images.go -package=services

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/sbilibin2017/pocket-notes/internal/logger"
	"github.com/sbilibin2017/pocket-notes/internal/models"
)

// ImagePicker acquires images from the device. An empty path with a nil
// error means the user picked nothing.
type ImagePicker interface {
	PickFromGallery(ctx context.Context, name string) (string, error)
	TakePhoto(ctx context.Context) (string, error)
}

var extPattern = regexp.MustCompile(`\.(\w+)$`)

const maxNameAttempts = 100

// ImageService copies picked images into the app's own image directory so
// notes keep a path that outlives the picker's temporary file.
type ImageService struct {
	picker ImagePicker
	dir    string
	now    func() time.Time
}

// NewImageService creates an ImageService storing copies under dir.
func NewImageService(picker ImagePicker, dir string) *ImageService {
	return &ImageService{
		picker: picker,
		dir:    dir,
		now:    time.Now,
	}
}

// FromGallery picks name from the gallery and persists it.
func (s *ImageService) FromGallery(ctx context.Context, name string) (string, error) {
	src, err := s.picker.PickFromGallery(ctx, name)
	if err != nil {
		logger.Log.Warnw("image pick failed", "source", models.ImageFromGallery, "name", name, "error", err)
		return "", err
	}
	if src == "" {
		return "", nil
	}
	return s.PersistImage(ctx, src), nil
}

// FromCamera takes a photo and persists it.
func (s *ImageService) FromCamera(ctx context.Context) (string, error) {
	src, err := s.picker.TakePhoto(ctx)
	if err != nil {
		logger.Log.Warnw("image pick failed", "source", models.ImageFromCamera, "error", err)
		return "", err
	}
	if src == "" {
		return "", nil
	}
	return s.PersistImage(ctx, src), nil
}

// PersistImage copies src to <dir>/<unix-millis>.<ext> and returns the copy's path.
// If the copy fails, src itself is returned.
func (s *ImageService) PersistImage(ctx context.Context, src string) string {
	ext := models.DefaultImageExt
	if m := extPattern.FindStringSubmatch(src); m != nil {
		ext = m[1]
	}
	stamp := s.now().UnixMilli()
	dest := filepath.Join(s.dir, fmt.Sprintf("%d.%s", stamp, ext))

	// Images saved within the same millisecond get a -N suffix.
	err := copyFile(src, dest)
	for n := 1; errors.Is(err, fs.ErrExist) && n <= maxNameAttempts; n++ {
		dest = filepath.Join(s.dir, fmt.Sprintf("%d-%d.%s", stamp, n, ext))
		err = copyFile(src, dest)
	}
	if err != nil {
		logger.Log.Warnw("Image copy failed, returning original path", "src", src, "dest", dest, "error", err)
		return src
	}

	logger.Log.Infow("image persisted", "src", src, "dest", dest)
	return dest
}

func copyFile(src, dest string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o700); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dest)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
