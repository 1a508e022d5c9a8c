package middleware

import (
	"net/http"
	"strings"

	"devjobs-backend/internal/delivery/http/response"
	"devjobs-backend/internal/domain"
	"devjobs-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware gates protected routes on a valid bearer token. On
// success the decoded user id is attached to the request context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "Invalid Authorization format", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Verify(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.UserID)
		c.Next()
	}
}
