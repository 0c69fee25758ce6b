package config

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "task-tracker.com/task-tracker/internal/models"
)

// OpenDatabase opens the sqlite database at dsn and migrates the schema.
func OpenDatabase(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle failed: %w", err)
	}
	// sqlite has a single writer, and ":memory:" databases live per connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}

func NewDatabaseClient(dsn string) *gorm.DB {
	db, err := OpenDatabase(dsn, logger.Warn)
	if err != nil {
		log.Fatal(err)
	}
	return db
}
