package main

import (
	"context"                   // Migration timeout
	"time"                      // Timeout duration
	"user_auth/internal/config" // Custom import path (Config)
	"user_auth/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus"
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	mysqlDB, err := db.OpenMySQL(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	mongoClient, err := db.OpenMongo(ctx, cfg.MongoURI, cfg.StoreTimeout)
	if err != nil {
		logrus.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	profiles := mongoClient.Database(cfg.MongoDatabase).Collection(db.ProfilesCollection)
	if err := db.Migrate(ctx, mysqlDB, profiles); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
