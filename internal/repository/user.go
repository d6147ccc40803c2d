package repository

import (
	"context"

	"blog-api/internal/domain"
)

// UserRepository defines persistence operations for User documents.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateStatus(ctx context.Context, id, status string) error
	AddPost(ctx context.Context, userID, postID string) error
	RemovePost(ctx context.Context, userID, postID string) error
}
