package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/services"
)

// ContextUserIDKey is where AuthMiddleware parks the authenticated user id
// for the handlers downstream.
const ContextUserIDKey = "userID"

const bearerPrefix = "Bearer "

// AuthMiddleware rejects requests without a valid bearer token and stashes
// the token's subject in the gin context. All responses are 401; the body
// only says whether the header or the token was the problem.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "bearer token required")
			return
		}

		raw := strings.TrimSpace(header[len(bearerPrefix):])
		if raw == "" {
			abortUnauthorized(c, "bearer token required")
			return
		}

		userID, err := tokens.ValidateToken(raw)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// GetUserID reads the id AuthMiddleware stored. The second return is false
// when the route was wired without the middleware.
func GetUserID(c *gin.Context) (string, bool) {
	id, ok := c.Get(ContextUserIDKey)
	if !ok {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}
