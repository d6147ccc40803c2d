package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blog-api/internal/apperr"
	"blog-api/internal/auth"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
	"blog-api/internal/validate"
)

// AuthPayload is the login result.
type AuthPayload struct {
	Token  string
	UserID string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*AuthPayload, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenService) UserService {
	return &userService{users: users, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var v validate.Violations
	v.Check(validate.EmailShaped(email), "email is invalid")
	v.Check(validate.MinLength(password, 5), "password too short")
	if !v.Empty() {
		return nil, apperr.Validation("invalid input", v.Messages())
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("user exists already")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Status:       domain.DefaultStatus,
		PostIDs:      []string{},
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		// the check above raced another registration; the unique index won
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("user exists already")
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Authentication("wrong email or password")
		}
		return nil, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, apperr.Authentication("wrong email or password")
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthPayload{Token: token, UserID: user.ID}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) UpdateStatus(ctx context.Context, id, status string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	// absence of a new status means "keep existing"
	if validate.NonEmpty(status) {
		if err := s.users.UpdateStatus(ctx, id, status); err != nil {
			return nil, err
		}
		user.Status = status
	}

	return sanitizeUser(user), nil
}

// sanitizeUser strips the password hash before a user leaves the service.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
