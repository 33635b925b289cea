package api

import (
	"net/http"                      // HTTP status codes
	"user_auth/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin" // Gin web framework
)

// NewRouter builds the gin engine with all routes
func NewRouter(auth AuthService, profiles ProfileService) *gin.Engine {
	r := gin.New()                                           // Gin router instance
	r.Use(middleware.RequestLogger(), middleware.Recovery()) // Logging and panic recovery

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	r.POST("/register", RegisterHandler(auth)) // Registration endpoint
	r.POST("/login", LoginHandler(auth))       // Login endpoint

	// Profile routes (protected by JWT)
	profileGroup := r.Group("/profile")
	profileGroup.Use(middleware.JWTAuthMiddleware(auth))
	profileGroup.GET("", GetProfileHandler(profiles))    // Read profile endpoint
	profileGroup.PUT("", UpdateProfileHandler(profiles)) // Upsert profile endpoint

	return r
}
