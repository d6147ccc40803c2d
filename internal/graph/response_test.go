package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-api/internal/domain"
)

func TestUserToResponse_NeverCarriesPassword(t *testing.T) {
	out := userToResponse(&domain.User{
		ID:           "user-1",
		Email:        "a@x.com",
		Name:         "A",
		PasswordHash: "$2a$12$abcdef",
		Status:       "hello",
	})

	assert.Equal(t, "user-1", out.ID)
	assert.Equal(t, "a@x.com", out.Email)
	// PasswordHash has no place in the response shape at all
	assert.Equal(t, []string{}, out.Posts)
}

func TestUserToResponse_NilSafe(t *testing.T) {
	assert.Nil(t, userToResponse(nil))
}

func TestPostToResponse_TimestampsAreRFC3339(t *testing.T) {
	created := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	out := postToResponse(&domain.Post{
		ID:        "post-1",
		Title:     "Hello World",
		CreatedAt: created,
		UpdatedAt: created.Add(time.Minute),
	})

	require.Equal(t, "2026-08-28T10:30:00Z", out.CreatedAt)
	require.Equal(t, "2026-08-28T10:31:00Z", out.UpdatedAt)
	assert.Nil(t, out.Creator)
}
