package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware annotates every request with an auth Context. A missing header,
// malformed header, or failed verification downgrades to unauthenticated;
// the request is never rejected here. Enforcement belongs to each operation.
func Middleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac := Context{}

		header := c.GetHeader("Authorization")
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if identity, err := tokens.Verify(strings.TrimSpace(parts[1])); err == nil {
				ac = Context{Authenticated: true, UserID: identity.UserID}
			}
		}

		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), ac))
		c.Next()
	}
}
