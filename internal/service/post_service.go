package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"blog-api/internal/apperr"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
	"blog-api/internal/storage"
	"blog-api/internal/validate"
)

// PageSize is the fixed number of posts per listing page.
const PageSize = 2

const minFieldLength = 5

// PostInput carries the user-supplied fields for create and update.
type PostInput struct {
	Title    string
	Content  string
	ImageURL string
}

// PostsPage is one page of the post listing plus the overall total.
type PostsPage struct {
	Posts      []domain.Post
	TotalPosts int64
}

// PostService coordinates post operations backed by repositories and
// the image store. Callers pass the authenticated user's id where an
// operation is owner-scoped.
type PostService interface {
	Create(ctx context.Context, creatorID string, in PostInput) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, page int) (*PostsPage, error)
	Update(ctx context.Context, userID, id string, in PostInput) (*domain.Post, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type postService struct {
	posts  repository.PostRepository
	users  repository.UserRepository
	files  storage.Service
	logger *logrus.Logger
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, files storage.Service, logger *logrus.Logger) PostService {
	return &postService{
		posts:  posts,
		users:  users,
		files:  files,
		logger: logger,
	}
}

func (s *postService) Create(ctx context.Context, creatorID string, in PostInput) (*domain.Post, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	creator, err := s.users.GetByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Authentication("user not found")
		}
		return nil, err
	}

	post := &domain.Post{
		Title:     in.Title,
		Content:   in.Content,
		ImageURL:  in.ImageURL,
		CreatorID: creator.ID,
	}

	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	if err := s.users.AddPost(ctx, creator.ID, post.ID); err != nil {
		return nil, err
	}

	post.Creator = sanitizeUser(creator)
	post.Creator.PostIDs = append(post.Creator.PostIDs, post.ID)
	return post, nil
}

func (s *postService) Get(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	post.Creator = sanitizeUser(post.Creator)
	return post, nil
}

func (s *postService) List(ctx context.Context, page int) (*PostsPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.posts.Count(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.List(ctx, int64(page-1)*PageSize, PageSize)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Creator = sanitizeUser(posts[i].Creator)
	}

	return &PostsPage{Posts: posts, TotalPosts: total}, nil
}

func (s *postService) Update(ctx context.Context, userID, id string, in PostInput) (*domain.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.CreatorID != userID {
		return nil, apperr.Authorization("not authorized")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Content = in.Content
	// absence of a new image path means "keep existing"
	if validate.NonEmpty(in.ImageURL) {
		post.ImageURL = in.ImageURL
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, userID, id string) (bool, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if post.CreatorID != userID {
		return false, apperr.Authorization("not authorized")
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return false, err
	}

	// losing an orphaned file is acceptable, blocking the caller is not
	if post.ImageURL != "" {
		if err := s.files.Remove(ctx, post.ImageURL); err != nil {
			s.logger.Warnf("remove image %s: %v", post.ImageURL, err)
		}
	}

	if err := s.users.RemovePost(ctx, post.CreatorID, id); err != nil {
		return false, err
	}
	return true, nil
}

func validateInput(in PostInput) error {
	var v validate.Violations
	v.Check(validate.NonEmpty(in.Title) && validate.MinLength(in.Title, minFieldLength), "title is invalid")
	v.Check(validate.NonEmpty(in.Content) && validate.MinLength(in.Content, minFieldLength), "content is invalid")
	if !v.Empty() {
		return apperr.Validation("invalid input", v.Messages())
	}
	return nil
}
