package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For duration suffix handling
	"time"    // For token lifetime and store timeouts

	"github.com/joho/godotenv" // For loading .env files
	"github.com/sirupsen/logrus"
)

// Insecure defaults, meant to be overridden in any real deployment
const (
	DefaultJWTSecret    = "your-secret-key"
	DefaultJWTExpire    = 30 * 24 * time.Hour
	DefaultStoreTimeout = 5 * time.Second
)

// Config holds the application configuration
type Config struct {
	AppPort       string        // Application port
	MySQLUser     string        // MySQL user
	MySQLPassword string        // MySQL password
	MySQLHost     string        // MySQL host
	MySQLPort     string        // MySQL port
	MySQLDatabase string        // MySQL database name
	MySQLMaxConns int           // Bounded connection pool size
	MongoURI      string        // MongoDB connection URI
	MongoDatabase string        // MongoDB database name
	RedisAddr     string        // Redis server address, empty disables the cache
	RedisPass     string        // Redis password
	RedisDB       int           // Redis database number
	JWTSecret     string        // JWT signing secret
	JWTExpire     time.Duration // Token lifetime
	StoreTimeout  time.Duration // Timeout applied to every store call
	IsProd        bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:       getEnv("APP_PORT", "5000"),
		MySQLUser:     getEnv("MYSQL_USER", "root"),
		MySQLPassword: os.Getenv("MYSQL_PASSWORD"),
		MySQLHost:     getEnv("MYSQL_HOST", "localhost"),
		MySQLPort:     getEnv("MYSQL_PORT", "3306"),
		MySQLDatabase: getEnv("MYSQL_DATABASE", "user_auth"),
		MySQLMaxConns: getEnvInt("MYSQL_MAX_CONNS", 10),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "user_auth"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPass:     os.Getenv("REDIS_PASS"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		JWTSecret:     getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTExpire:     getEnvDuration("JWT_EXPIRE", DefaultJWTExpire),
		StoreTimeout:  getEnvDuration("STORE_TIMEOUT", DefaultStoreTimeout),
		IsProd:        os.Getenv("IS_PROD") == "true", // Is production environment
	}
}

// MySQLDSN builds the Data Source Name for the credential store
func (c *Config) MySQLDSN() string {
	return c.MySQLUser + ":" + c.MySQLPassword + "@tcp(" + c.MySQLHost + ":" + c.MySQLPort + ")/" + c.MySQLDatabase + "?parseTime=true"
}

// UsesDefaultSecret reports whether the insecure signing secret is still in place
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// ParseDuration accepts Go durations ("720h", "15m") and a day suffix ("30d")
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, err
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "value": v}).Warn("invalid integer, using default")
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := ParseDuration(v)
	if err != nil || d <= 0 {
		logrus.WithFields(logrus.Fields{"key": key, "value": v}).Warn("invalid duration, using default")
		return fallback
	}
	return d
}
