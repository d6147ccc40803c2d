package storage

import (
	"context"
	"io"
)

// Service stores uploaded image files and removes orphaned ones. Save
// returns the path callers persist as a post's image reference; Remove
// accepts exactly that path back. Removal failures are for the caller to
// log and swallow, never to propagate.
type Service interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}
