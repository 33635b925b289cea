package api

import (
	"context"                       // Request contexts
	"encoding/json"                 // Raw age decoding
	"net/http"                      // HTTP status codes
	"strconv"                       // Numeric strings
	"strings"                       // Trimming
	"time"                          // Date parsing
	"user_auth/internal/domain"     // Importing domain models
	"user_auth/internal/middleware" // Authenticated user
	"user_auth/internal/service"    // Profile results

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ProfileService is what the profile handlers need from service.ProfileService
type ProfileService interface {
	GetProfile(ctx context.Context, userID uint) (*service.ProfileResult, error)
	UpdateProfile(ctx context.Context, userID uint, upd domain.ProfileUpdate) (*domain.Profile, error)
}

// UpdateProfileRequest is the body of PUT /profile. Every field is optional;
// omitted fields are cleared.
type UpdateProfileRequest struct {
	Age     json.RawMessage `json:"age"`     // Number, numeric string, "" or null
	DOB     *string         `json:"dob"`     // YYYY-MM-DD or RFC3339
	Contact *string         `json:"contact"` // 10 digits
}

// ProfileResponse is the client view of a profile
type ProfileResponse struct {
	Age     *int    `json:"age"`
	DOB     *string `json:"dob"` // YYYY-MM-DD
	Contact *string `json:"contact"`
}

// GetProfileHandler returns the caller's user data and profile, null if none yet
func GetProfileHandler(profiles ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": domain.ErrInvalidToken.Message})
			return
		}
		res, err := profiles.GetProfile(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": userID})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":    res.User,                       // Public user projection
			"profile": toProfileResponse(res.Profile), // null until first update
		})
	}
}

// UpdateProfileHandler upserts the caller's profile
func UpdateProfileHandler(profiles ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": domain.ErrInvalidToken.Message})
			return
		}
		var req UpdateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		upd, err := req.toUpdate()
		if err != nil {
			respondError(c, err, nil)
			return
		}
		profile, err := profiles.UpdateProfile(c.Request.Context(), userID, upd)
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": userID})
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": userID}).Info("Profile updated")
		c.JSON(http.StatusOK, toProfileResponse(profile))
	}
}

// toUpdate parses the request into a domain update; empty strings count as omitted
func (r UpdateProfileRequest) toUpdate() (domain.ProfileUpdate, error) {
	var upd domain.ProfileUpdate

	age, err := parseAge(r.Age)
	if err != nil {
		return upd, err
	}
	upd.Age = age

	if r.DOB != nil && strings.TrimSpace(*r.DOB) != "" {
		dob, err := parseDate(strings.TrimSpace(*r.DOB))
		if err != nil {
			return upd, domain.Validation("Invalid date of birth")
		}
		upd.DOB = &dob
	}

	if r.Contact != nil && strings.TrimSpace(*r.Contact) != "" {
		contact := strings.TrimSpace(*r.Contact)
		upd.Contact = &contact
	}
	return upd, nil
}

func parseAge(raw json.RawMessage) (*int, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" || s == `""` {
		return nil, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n, nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
			return &n, nil
		}
	}
	return nil, domain.Validation("Age must be a positive integer")
}

// parseDate accepts YYYY-MM-DD or a full RFC3339 timestamp and keeps only the date
func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func toProfileResponse(p *domain.Profile) *ProfileResponse {
	if p == nil {
		return nil
	}
	resp := &ProfileResponse{Age: p.Age, Contact: p.Contact}
	if p.DOB != nil {
		dob := p.DOB.UTC().Format(time.DateOnly)
		resp.DOB = &dob
	}
	return resp
}
