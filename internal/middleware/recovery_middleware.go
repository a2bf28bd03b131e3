// internal/middleware/recovery_middleware.go
package middleware

import (
	"net/http"

	"jobportal-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns a handler panic into a 500 envelope and logs it
// with the stack and the authenticated caller, when there is one.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			fields := []zap.Field{
				zap.Any("panic", rec),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
				zap.Stack("stack"),
			}
			if id, ok := GetUserID(c); ok {
				fields = append(fields, zap.Int64("user_id", id))
			}
			logger.Error("panic recovered", fields...)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.Error(c, http.StatusInternalServerError, "Internal Server Error", nil)
		}()
		c.Next()
	}
}
