package handler

import (
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mural-studio/backend/domain"
)

const imageURLPrefix = "/images/"

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// ImageStore keeps uploaded images on local disk under Dir and serves them
// below /images/.
type ImageStore struct {
	Dir string
}

// Save writes file under a fresh name and returns its public URL.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExts[ext] {
		return "", errors.Wrapf(domain.ErrBadRequest, "unsupported image type %q", ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Printf("failed src.Close: %s", err.Error())
		}
	}()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create image dir")
	}
	name := uuid.New().String() + ext
	out, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", errors.Wrap(err, "create image")
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", errors.Wrap(err, "write image")
	}
	return imageURLPrefix + name, nil
}

// Remove deletes the file behind url. Unknown or foreign URLs are ignored.
func (s *ImageStore) Remove(url string) {
	if !strings.HasPrefix(url, imageURLPrefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(url, imageURLPrefix))
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove image %s: %s", name, err.Error())
	}
}
