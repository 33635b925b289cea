package db

import (
	"context"                   // Store call timeouts
	"errors"                    // Error matching
	"strings"                   // Key name inspection
	"time"                      // Timeout durations
	"user_auth/internal/domain" // Importing domain models

	"github.com/go-sql-driver/mysql" // MySQL error codes
	"gorm.io/gorm"                   // GORM ORM library
)

// MySQL error numbers mapped to domain errors
const (
	mysqlDuplicateEntry = 1062 // Unique key violation
	mysqlDataTooLong    = 1406 // Value wider than its column
)

// UserStore is the gorm-backed credential store
type UserStore struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewUserStore creates a UserStore; every call is bounded by timeout
func NewUserStore(db *gorm.DB, timeout time.Duration) *UserStore {
	return &UserStore{db: db, timeout: timeout}
}

// FindByUsername returns the user with the given username, nil if none
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findOne(ctx, "username = ?", username)
}

// FindByEmail returns the user with the given email, nil if none
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, "email = ?", email)
}

// FindPublicByID loads only the public columns of a user, nil if none
func (s *UserStore) FindPublicByID(ctx context.Context, id uint) (*domain.PublicUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	var pub domain.PublicUser
	err := s.db.WithContext(ctx).
		Model(&domain.User{}).
		Select("id", "username", "email"). // Never read the hash here
		Where("id = ?", id).
		Take(&pub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pub, nil
}

// Create inserts the user and fills in its ID
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return translateError(s.db.WithContext(ctx).Create(u).Error)
}

func (s *UserStore) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	var user domain.User
	err := s.db.WithContext(ctx).Where(query, arg).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// translateError maps MySQL input errors to domain errors; others pass through
func translateError(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case mysqlDuplicateEntry:
	case mysqlDataTooLong:
		return domain.Validation("Username and email must be at most 255 characters")
	default:
		return err
	}
	// Message looks like: Duplicate entry 'x' for key 'users.idx_users_email'
	key := me.Message
	if i := strings.LastIndex(key, "for key"); i >= 0 {
		key = key[i:]
	}
	if strings.Contains(key, "email") {
		return domain.ErrEmailExists
	}
	return domain.ErrUsernameExists
}
