package store

import (
	"context"

	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// CreateMessage inserts a chat message. The creation timestamp is assigned
// by the store, never taken from the client.
func (s *Store) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	return s.db.WithContext(ctx).Create(msg).Error
}

// RecentMessages returns the most recent limit messages in creation
// order, oldest first.
func (s *Store) RecentMessages(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	// Fetched newest-first for the LIMIT; flip to oldest-first.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
