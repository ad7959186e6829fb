// Package store is the entity store: durable, indexed storage for the
// five record kinds, backed by gorm. All reads are snapshots of committed
// state; all multi-step writes run inside a transaction.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// Store wraps the database handle. It is safe for concurrent use.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the schema for every entity kind.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&models.Account{},
		&models.ChatMessage{},
		&models.Announcement{},
		&models.ScheduleEntry{},
		&models.QuizResult{},
	)
}

// Seed inserts the default schedule and welcome announcement when the
// corresponding tables are empty, so a fresh classroom is usable at once.
func (s *Store) Seed(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.ScheduleEntry{}).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			entries := models.DefaultSchedule()
			if err := tx.Create(&entries).Error; err != nil {
				return fmt.Errorf("seed schedule: %w", err)
			}
			slog.Info("Seeded default schedule", "entries", len(entries))
		}

		if err := tx.Model(&models.Announcement{}).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			posts := models.DefaultAnnouncements()
			if err := tx.Create(&posts).Error; err != nil {
				return fmt.Errorf("seed announcements: %w", err)
			}
			slog.Info("Seeded default announcements", "posts", len(posts))
		}
		return nil
	})
}
