package service

import (
	"context"
	"user_auth/internal/domain"
)

// UserStore is the credential store used by AuthService. Find methods return
// (nil, nil) when no row matches.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts u and sets its ID. A uniqueness violation is reported as
	// domain.ErrUsernameExists or domain.ErrEmailExists.
	Create(ctx context.Context, u *domain.User) error
}

// PublicUserReader loads the public projection of a user by ID, (nil, nil) if absent.
type PublicUserReader interface {
	FindPublicByID(ctx context.Context, id uint) (*domain.PublicUser, error)
}

// ProfileStore is the document store holding one profile per user.
type ProfileStore interface {
	FindByUserID(ctx context.Context, userID uint) (*domain.Profile, error)
	// Upsert atomically creates or replaces the profile of userID. Nil fields
	// in upd are cleared.
	Upsert(ctx context.Context, userID uint, upd domain.ProfileUpdate) (*domain.Profile, error)
}

// TokenSigner issues and verifies bearer tokens.
type TokenSigner interface {
	Sign(userID uint) (string, error)
	Verify(token string) (uint, error)
}
