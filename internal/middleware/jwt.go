package middleware

import (
	"net/http"                  // HTTP status codes
	"strings"                   // String manipulation
	"user_auth/internal/domain" // Error messages

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserIDKey is the gin context key holding the authenticated user's ID
const UserIDKey = "userID"

// TokenVerifier resolves a bearer token to the user it was issued for
type TokenVerifier interface {
	VerifyToken(token string) (uint, error)
}

// JWTAuthMiddleware validates bearer tokens and stores the caller's user ID.
// Missing, malformed, expired and forged tokens all get the same 401.
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": domain.ErrInvalidToken.Message})
			return
		}
		userID, err := verifier.VerifyToken(strings.TrimSpace(tokenStr))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": domain.ErrInvalidToken.Message})
			return
		}
		c.Set(UserIDKey, userID) // Store userID in context
		c.Next()                 // Proceed to the next handler
	}
}

// UserID returns the authenticated user's ID set by JWTAuthMiddleware
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
