package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(tokens *TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware(tokens))
	router.GET("/test", func(c *gin.Context) {
		ac := FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"authenticated": ac.Authenticated, "userId": ac.UserID})
	})
	return router
}

func TestMiddleware_ValidToken(t *testing.T) {
	tokens := NewTokenService("test-secret-key", time.Hour)
	token, err := tokens.Issue(Identity{UserID: "user-123", Email: "a@x.com"})
	require.NoError(t, err)

	router := setupTestRouter(tokens)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":true,"userId":"user-123"}`, w.Body.String())
}

func TestMiddleware_NoHeaderStillPasses(t *testing.T) {
	tokens := NewTokenService("test-secret-key", time.Hour)
	router := setupTestRouter(tokens)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	// annotation only: the request goes through, unauthenticated
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false,"userId":""}`, w.Body.String())
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	tokens := NewTokenService("test-secret-key", time.Hour)
	router := setupTestRouter(tokens)

	for _, header := range []string{"Bearer", "Basic abc", "Bearer not-a-token"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.JSONEq(t, `{"authenticated":false,"userId":""}`, w.Body.String(), header)
	}
}

func TestMiddleware_WrongSecretToken(t *testing.T) {
	other := NewTokenService("other-secret", time.Hour)
	token, err := other.Issue(Identity{UserID: "user-123"})
	require.NoError(t, err)

	tokens := NewTokenService("test-secret-key", time.Hour)
	router := setupTestRouter(tokens)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false,"userId":""}`, w.Body.String())
}
