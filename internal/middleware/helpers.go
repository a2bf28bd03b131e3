// internal/middleware/helpers.go
package middleware

import "github.com/gin-gonic/gin"

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxJTI    = "jti"
)

// GetUserID gets the authenticated user ID from context
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// MustGetUserID gets user ID from context or panics
func MustGetUserID(c *gin.Context) int64 {
	id, ok := GetUserID(c)
	if !ok {
		panic("user_id not found in context")
	}
	return id
}

// GetRole gets the user role from context
func GetRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}

// GetJTI gets the token ID from context
func GetJTI(c *gin.Context) string {
	return c.GetString(ctxJTI)
}
