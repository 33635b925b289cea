package db

import (
	"context"                   // Context for Redis operations
	"strconv"                   // Key formatting
	"time"                      // Cache TTL and call timeout
	"user_auth/internal/domain" // Importing domain models
	"user_auth/internal/utils"  // Cache helpers

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// publicUserTTL bounds how long a projection lives in Redis
const publicUserTTL = 60 * time.Second

type publicUserFinder interface {
	FindPublicByID(ctx context.Context, id uint) (*domain.PublicUser, error)
}

// CachedUsers serves public user projections from Redis, falling back to the
// credential store. Username and email never change, so entries are not invalidated.
type CachedUsers struct {
	next    publicUserFinder
	rdb     redis.Cmdable
	timeout time.Duration // Bound on each Redis call
}

// NewCachedUsers wraps next with a Redis read-through cache
func NewCachedUsers(next publicUserFinder, rdb redis.Cmdable, timeout time.Duration) *CachedUsers {
	return &CachedUsers{next: next, rdb: rdb, timeout: timeout}
}

// cacheCtx bounds a single Redis call; the store call keeps its own timeout
func (c *CachedUsers) cacheCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// FindPublicByID returns the cached projection or loads and caches it
func (c *CachedUsers) FindPublicByID(ctx context.Context, id uint) (*domain.PublicUser, error) {
	key := "user:public:" + strconv.FormatUint(uint64(id), 10) // Cache key for the user
	var pub domain.PublicUser
	getCtx, cancel := c.cacheCtx(ctx)
	found, err := utils.GetCache(getCtx, c.rdb, key, &pub)
	cancel()
	switch {
	case err == nil && found:
		return &pub, nil // Cache hit
	case found:
		// Unreadable entry, drop it and reload
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Corrupt cache entry")
		delCtx, cancel := c.cacheCtx(ctx)
		_ = utils.DeleteCache(delCtx, c.rdb, key)
		cancel()
	case err != nil:
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache read failed")
	}

	user, err := c.next.FindPublicByID(ctx, id)
	if err != nil || user == nil {
		return user, err // Misses are not cached
	}
	setCtx, cancel := c.cacheCtx(ctx)
	defer cancel()
	if err := utils.SetCache(setCtx, c.rdb, key, user, publicUserTTL); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache write failed")
	}
	return user, nil
}
