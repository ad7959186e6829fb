package config

import (
	"fmt"
	"log/slog"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the postgres database. gorm's own logging is routed
// through slog.
func ConnectDB(url string) (*gorm.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is not set")
	}

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger:         slogGorm.New(slogGorm.WithHandler(slog.Default().Handler())),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	slog.Info("Connected to database")
	return db, nil
}
