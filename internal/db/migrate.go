package db

import (
	"context"                   // Index creation timeout
	"user_auth/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo" // MongoDB driver
	"gorm.io/gorm"                      // GORM ORM library
)

// Migrate creates the users table and the profile indexes
func Migrate(ctx context.Context, db *gorm.DB, profiles *mongo.Collection) error {
	// AutoMigrate will create tables, missing constraints, columns and indexes
	if err := db.WithContext(ctx).AutoMigrate(&domain.User{}); err != nil {
		return err
	}
	logrus.Info("MySQL tables initialized")
	if err := EnsureProfileIndexes(ctx, profiles); err != nil {
		return err
	}
	logrus.Info("MongoDB indexes initialized")
	return nil
}
