package api

import (
	"errors"                    // Error matching
	"net/http"                  // HTTP status codes
	"user_auth/internal/domain" // Error taxonomy

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps an error kind to its HTTP status
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindConflict:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the single response for a failed request. Only the
// domain message reaches the client; causes are logged for server errors.
func respondError(c *gin.Context, err error, fields logrus.Fields) {
	var e *domain.Error
	if !errors.As(err, &e) {
		e = domain.Server("Something went wrong!", err)
	}
	if e.Kind == domain.KindServer {
		entry := logrus.WithFields(fields).WithField("path", c.Request.URL.Path)
		if e.Err != nil {
			entry = entry.WithField("error", e.Err.Error())
		}
		entry.Error(e.Message)
	}
	c.AbortWithStatusJSON(statusFor(e.Kind), gin.H{"message": e.Message})
}
