package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// PublicPrefix is the URL path uploaded images are served under.
const PublicPrefix = "images"

// LocalService stores images on disk under a fixed root. The returned
// paths are relative ("images/<name>") and line up with the static route.
type LocalService struct {
	root string
}

func NewLocalService(root string) *LocalService {
	return &LocalService{root: filepath.Clean(root)}
}

func (s *LocalService) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create storage root: %w", err)
	}

	name = filepath.Base(name)
	dst, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return path.Join(PublicPrefix, name), nil
}

// Remove deletes the file behind a previously returned path. Only the base
// name is honored, so a stored path can never escape the storage root.
func (s *LocalService) Remove(ctx context.Context, p string) error {
	name := path.Base(p)
	if name == "" || name == "." || name == "/" {
		return fmt.Errorf("invalid image path %q", p)
	}
	if err := os.Remove(filepath.Join(s.root, name)); err != nil {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}
