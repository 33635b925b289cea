package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"30d":  30 * 24 * time.Hour,
		"1d":   24 * time.Hour,
		"720h": 720 * time.Hour,
		"15m":  15 * time.Minute,
		" 2d ": 48 * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDuration("xd")
	assert.Error(t, err)
	_, err = ParseDuration("soon")
	assert.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "JWT_SECRET", "JWT_EXPIRE", "STORE_TIMEOUT", "MYSQL_MAX_CONNS", "REDIS_ADDR", "IS_PROD"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "5000", cfg.AppPort)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.Equal(t, DefaultJWTExpire, cfg.JWTExpire)
	assert.Equal(t, DefaultStoreTimeout, cfg.StoreTimeout)
	assert.Equal(t, 10, cfg.MySQLMaxConns)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRE", "7d")
	t.Setenv("STORE_TIMEOUT", "250ms")
	t.Setenv("MYSQL_MAX_CONNS", "4")
	t.Setenv("MYSQL_USER", "app")
	t.Setenv("MYSQL_PASSWORD", "pw")
	t.Setenv("MYSQL_HOST", "db")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("MYSQL_DATABASE", "auth")

	cfg := LoadConfig()
	assert.False(t, cfg.UsesDefaultSecret())
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpire)
	assert.Equal(t, 250*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, 4, cfg.MySQLMaxConns)
	assert.Equal(t, "app:pw@tcp(db:3307)/auth?parseTime=true", cfg.MySQLDSN())
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRE", "forever")
	t.Setenv("STORE_TIMEOUT", "-1s")
	t.Setenv("REDIS_DB", "one")

	cfg := LoadConfig()
	assert.Equal(t, DefaultJWTExpire, cfg.JWTExpire)
	assert.Equal(t, DefaultStoreTimeout, cfg.StoreTimeout)
	assert.Equal(t, 0, cfg.RedisDB)
}
