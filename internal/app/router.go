// internal/app/router.go
package app

import (
	"net/http"

	userHandler "jobportal-service/internal/handlers/user"
	"jobportal-service/internal/middleware"
	"jobportal-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	UserHandler    *userHandler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
	UploadDir      string
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	// ==================== Health Check ====================
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Job Portal Backend is running!", "status": "OK"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Health check passed", "status": "OK"})
	})

	if h.UploadDir != "" {
		r.Static("/uploads", h.UploadDir)
	}

	api := r.Group("/api/v1")

	// ==================== Public User Routes ====================
	userPublic := api.Group("/user")
	{
		userPublic.POST("/register", h.UserHandler.Register)
		userPublic.POST("/login", h.UserHandler.Login)
	}

	// ==================== Authenticated User Routes ====================
	userProtected := api.Group("/user")
	userProtected.Use(h.AuthMiddleware.Auth())
	{
		userProtected.GET("/getuser", h.UserHandler.GetUser)
		userProtected.GET("/logout", h.UserHandler.Logout)
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route "+c.Request.URL.Path+" not found.")
	})
}
