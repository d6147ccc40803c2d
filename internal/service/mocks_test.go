package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
	"blog-api/internal/storage"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Init(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockUserRepository) AddPost(ctx context.Context, userID, postID string) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *MockUserRepository) RemovePost(ctx context.Context, userID, postID string) error {
	return m.Called(ctx, userID, postID).Error(0)
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Init(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPostRepository) Create(ctx context.Context, post *domain.Post) (string, error) {
	args := m.Called(ctx, post)
	return args.String(0), args.Error(1)
}

func (m *MockPostRepository) Get(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, skip, limit int64) ([]domain.Post, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repository.PostRepository = (*MockPostRepository)(nil)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, name, contentType, r)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Remove(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

var _ storage.Service = (*MockStorage)(nil)
