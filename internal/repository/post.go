package repository

import (
	"context"

	"blog-api/internal/domain"
)

// PostRepository defines persistence operations for Post documents.
// Reads expand the creator reference into Post.Creator.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) (string, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, skip, limit int64) ([]domain.Post, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
}
