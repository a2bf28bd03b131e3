// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"strings"

	"jobportal-service/internal/pkg/cookie"
	"jobportal-service/internal/pkg/jwt"
	"jobportal-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	msgNotAuthenticated = "User is not authenticated."
	msgInvalidToken     = "Invalid or expired token."
)

// TokenValidator re-validates a session token on every request.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
	}
}

// Auth validates the session token and puts the identity on the context
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, msgNotAuthenticated)
			return
		}

		claims, err := m.validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			response.Unauthorized(c, msgInvalidToken)
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxJTI, claims.ID)

		c.Next()
	}
}

// extractToken prefers the session cookie and falls back to a Bearer header
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(cookie.Name); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	return ""
}
