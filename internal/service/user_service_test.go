package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-api/internal/apperr"
	"blog-api/internal/auth"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

func newUserService(users *MockUserRepository) (UserService, *auth.TokenService) {
	tokens := auth.NewTokenService("test-secret-key", time.Hour)
	return NewUserService(users, tokens), tokens
}

func TestRegister_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := newUserService(users)

	users.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, repository.ErrNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = "user-1"
		}).
		Return("user-1", nil)

	user, err := svc.Register(context.Background(), "A@X.com ", "secret", " A ")
	require.NoError(t, err)

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "A", user.Name)
	assert.Equal(t, domain.DefaultStatus, user.Status)
	assert.Empty(t, user.PasswordHash)
	users.AssertExpectations(t)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := newUserService(users)

	users.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{ID: "user-1", Email: "a@x.com"}, nil)

	_, err := svc.Register(context.Background(), "a@x.com", "secret", "A")
	require.Error(t, err)

	appErr := apperr.From(err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_ShortPasswordFailsBeforePersistence(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := newUserService(users)

	_, err := svc.Register(context.Background(), "a@x.com", "1234", "A")
	require.Error(t, err)

	appErr := apperr.From(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
	assert.Equal(t, []apperr.FieldError{{Message: "password too short"}}, appErr.Data)
	users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_CollectsAllViolationsInOrder(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := newUserService(users)

	_, err := svc.Register(context.Background(), "not-an-email", "123", "A")
	require.Error(t, err)

	appErr := apperr.From(err)
	assert.Equal(t, []apperr.FieldError{
		{Message: "email is invalid"},
		{Message: "password too short"},
	}, appErr.Data)
}

// Two simultaneous registrations can both pass the pre-check; the unique
// index decides the winner. Which request wins is undefined, but the loser
// must surface as a conflict rather than a second user.
func TestRegister_InsertRaceLosesAsConflict(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := newUserService(users)

	users.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, repository.ErrNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return("", repository.ErrDuplicate)

	_, err := svc.Register(context.Background(), "a@x.com", "secret", "A")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.From(err).Status)
}

func TestLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	users := new(MockUserRepository)
	svc, tokens := newUserService(users)

	users.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{
		ID:           "user-1",
		Email:        "a@x.com",
		PasswordHash: hash,
	}, nil)

	payload, err := svc.Login(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", payload.UserID)
	assert.NotEmpty(t, payload.Token)

	identity, err := tokens.Verify(payload.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	users := new(MockUserRepository)
	svc, _ := newUserService(users)

	users.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{
		ID:           "user-1",
		Email:        "a@x.com",
		PasswordHash: hash,
	}, nil)

	_, err = svc.Login(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)

	appErr := apperr.From(err)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	assert.Equal(t, "wrong email or password", appErr.Message)
}

func TestLogin_UnknownEmailSameMessage(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := newUserService(users)

	users.On("GetByEmail", mock.Anything, "nobody@x.com").Return(nil, repository.ErrNotFound)

	_, err := svc.Login(context.Background(), "nobody@x.com", "secret")
	require.Error(t, err)

	appErr := apperr.From(err)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	// does not reveal whether the email or the password was wrong
	assert.Equal(t, "wrong email or password", appErr.Message)
}

func TestGetByID_NotFound(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := newUserService(users)

	users.On("GetByID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	_, err := svc.GetByID(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.From(err).Status)
}

func TestUpdateStatus_OverwritesWhenSupplied(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := newUserService(users)

	users.On("GetByID", mock.Anything, "user-1").Return(&domain.User{ID: "user-1", Status: "old"}, nil)
	users.On("UpdateStatus", mock.Anything, "user-1", "shipping!").Return(nil)

	user, err := svc.UpdateStatus(context.Background(), "user-1", "shipping!")
	require.NoError(t, err)
	assert.Equal(t, "shipping!", user.Status)
	users.AssertExpectations(t)
}

func TestUpdateStatus_EmptyKeepsExisting(t *testing.T) {
	users := new(MockUserRepository)
	svc, _ := newUserService(users)

	users.On("GetByID", mock.Anything, "user-1").Return(&domain.User{ID: "user-1", Status: "old"}, nil)

	user, err := svc.UpdateStatus(context.Background(), "user-1", "  ")
	require.NoError(t, err)
	assert.Equal(t, "old", user.Status)
	users.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
