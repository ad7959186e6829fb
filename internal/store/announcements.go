package store

import (
	"context"

	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// CreateAnnouncement inserts a new announcement.
func (s *Store) CreateAnnouncement(ctx context.Context, a *models.Announcement) error {
	return s.db.WithContext(ctx).Create(a).Error
}

// Announcements returns every announcement, newest first.
func (s *Store) Announcements(ctx context.Context) ([]models.Announcement, error) {
	var posts []models.Announcement
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	if posts == nil {
		posts = make([]models.Announcement, 0)
	}
	return posts, nil
}

// DeleteAnnouncement removes an announcement. Deleting a nonexistent id is
// a no-op so double-clicks and races do not surface as errors.
func (s *Store) DeleteAnnouncement(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Announcement{}, id).Error
}
