package api

import (
	"context"                    // Request contexts
	"errors"                     // Error matching
	"net/http"                   // HTTP status codes
	"user_auth/internal/service" // Auth results

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Binding errors
	"github.com/sirupsen/logrus"             // Logging library
)

// AuthService is what the auth handlers and middleware need from service.AuthService
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*service.AuthResult, error)
	Login(ctx context.Context, username, password string) (*service.AuthResult, error)
	VerifyToken(token string) (uint, error)
}

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Email    string `json:"email" binding:"required"`    // Format is checked after trimming
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username"` // Missing credentials fail like wrong ones
	Password string `json:"password"`
}

// registerFieldMessages maps binding failures to client messages
var registerFieldMessages = map[string]string{
	"Username": "Username is required",
	"Email":    "Invalid email address",
	"Password": "Password is required",
}

// RegisterHandler creates a user and returns a token for it
func RegisterHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": bindingMessage(err, registerFieldMessages)})
			return
		}
		res, err := auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			respondError(c, err, logrus.Fields{"username": req.Username})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  res.User.ID,       // New user ID
			"username": res.User.Username, // Username
		}).Info("User registered")
		c.JSON(http.StatusCreated, res) // Return token and public user
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		res, err := auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err, logrus.Fields{"username": req.Username})
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": res.User.ID}).Info("User logged in")
		c.JSON(http.StatusOK, res) // Return the token in the response
	}
}

// bindingMessage returns the message for the first failed field, if known
func bindingMessage(err error, fields map[string]string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := fields[verrs[0].Field()]; ok {
			return msg
		}
	}
	return "Invalid request"
}
