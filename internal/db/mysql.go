package db

import (
	"time"                      // Pool lifetimes
	"user_auth/internal/config" // Custom package for configuration

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
	"gorm.io/gorm/logger"  // GORM logger levels
)

// OpenMySQL connects to the credential store with a bounded connection pool
func OpenMySQL(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN()), &gorm.Config{
		SkipDefaultTransaction: true,                                // Single-statement writes need no wrapping transaction
		Logger:                 logger.Default.LogMode(logger.Warn), // Only slow queries and errors
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB() // Underlying *sql.DB for pool settings
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MySQLMaxConns)   // Bounded pool
	sqlDB.SetMaxIdleConns(cfg.MySQLMaxConns)   // Keep warm connections
	sqlDB.SetConnMaxLifetime(30 * time.Minute) // Recycle connections
	return db, nil
}
