package service

import (
	"context"
	"regexp"
	"time"

	"user_auth/internal/domain"
)

var contactPattern = regexp.MustCompile(`^[0-9]{10}$`)

// ProfileResult pairs the caller's public user data with their profile, which
// is nil until the first update.
type ProfileResult struct {
	User    domain.PublicUser
	Profile *domain.Profile
}

// ProfileService reads and upserts the profile of the authenticated caller
type ProfileService struct {
	users    PublicUserReader
	profiles ProfileStore
	now      func() time.Time
}

// NewProfileService creates a ProfileService
func NewProfileService(users PublicUserReader, profiles ProfileStore) *ProfileService {
	return &ProfileService{users: users, profiles: profiles, now: time.Now}
}

// GetProfile returns the user and their profile. A user without a profile is
// not an error.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*ProfileResult, error) {
	user, err := s.users.FindPublicByID(ctx, userID)
	if err != nil {
		return nil, domain.Server("Failed to fetch profile", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, domain.Server("Failed to fetch profile", err)
	}
	return &ProfileResult{User: *user, Profile: profile}, nil
}

// UpdateProfile replaces the caller's profile with upd, creating it if needed.
// Fields left nil are cleared, not merged with the stored profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, upd domain.ProfileUpdate) (*domain.Profile, error) {
	if err := s.validate(upd); err != nil {
		return nil, err
	}
	profile, err := s.profiles.Upsert(ctx, userID, upd)
	if err != nil {
		return nil, domain.Server("Failed to update profile", err)
	}
	return profile, nil
}

func (s *ProfileService) validate(upd domain.ProfileUpdate) error {
	if upd.Age != nil && *upd.Age <= 0 {
		return domain.Validation("Age must be a positive integer")
	}
	if upd.DOB != nil && upd.DOB.After(s.now()) {
		return domain.Validation("Date of birth cannot be in the future")
	}
	if upd.Contact != nil && !contactPattern.MatchString(*upd.Contact) {
		return domain.Validation("Contact must be 10 digits")
	}
	return nil
}
