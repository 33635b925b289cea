package main

import (
	"context"                    // context package is needed for store connections
	"errors"                     // For server shutdown errors
	"net/http"                   // HTTP server
	"os/signal"                  // Graceful shutdown on signals
	"syscall"                    // Signal numbers
	"time"                       // Shutdown timeout
	"user_auth/internal/api"     // Custom package for API handlers
	"user_auth/internal/config"  // Custom package for configuration
	"user_auth/internal/db"      // Custom package for stores
	"user_auth/internal/service" // Custom package for business logic
	"user_auth/internal/utils"   // Custom package for token signing

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode) // Set Mode to Release if in production
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if cfg.UsesDefaultSecret() {
		logrus.Warn("JWT_SECRET is not set, using the insecure default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Credential store
	mysqlDB, err := db.OpenMySQL(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to MySQL: %v", err) // Fatal error if DB connection fails
	}

	// Profile store
	mongoClient, err := db.OpenMongo(ctx, cfg.MongoURI, cfg.StoreTimeout)
	if err != nil {
		logrus.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	profilesColl := mongoClient.Database(cfg.MongoDatabase).Collection(db.ProfilesCollection)
	// Create the users table and profile indexes if missing
	if err := db.Migrate(ctx, mysqlDB, profilesColl); err != nil {
		logrus.Fatalf("database initialization failed: %v", err)
	}
	logrus.Info("Databases initialized")

	users := db.NewUserStore(mysqlDB, cfg.StoreTimeout)
	var publicUsers service.PublicUserReader = users
	// Optional Redis cache in front of public user lookups
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:                  cfg.RedisAddr, // Redis server address
			Password:              cfg.RedisPass, // Redis password
			DB:                    cfg.RedisDB,   // Redis database number
			ContextTimeoutEnabled: true,          // Honor per-call deadlines
		})
		defer redisClient.Close()
		// Test Redis connection
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		publicUsers = db.NewCachedUsers(users, redisClient, cfg.StoreTimeout)
	}

	signer := utils.NewJWTSigner(cfg.JWTSecret, cfg.JWTExpire)
	authService := service.NewAuthService(users, signer)
	profileService := service.NewProfileService(publicUsers, db.NewProfileStore(profilesColl, cfg.StoreTimeout))

	r := api.NewRouter(authService, profileService)
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logrus.Infof("Server running on port %s", cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
	}
	logrus.Info("Server stopped")
}
