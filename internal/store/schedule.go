package store

import (
	"context"

	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// CreateScheduleEntry inserts a schedule slot.
func (s *Store) CreateScheduleEntry(ctx context.Context, e *models.ScheduleEntry) error {
	return s.db.WithContext(ctx).Create(e).Error
}

// ScheduleEntries returns every entry. Ordering (grouping by day) is
// imposed by the presentation layer.
func (s *Store) ScheduleEntries(ctx context.Context) ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	if err := s.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make([]models.ScheduleEntry, 0)
	}
	return entries, nil
}

// DeleteScheduleEntry removes a slot; deleting a missing id is a no-op.
func (s *Store) DeleteScheduleEntry(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.ScheduleEntry{}, id).Error
}
