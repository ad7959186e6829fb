package models

import (
	"strings"

	"gorm.io/gorm"
)

// Priority of an announcement.
type Priority string

const (
	PriorityNormal Priority = "NORMAL"
	PriorityUrgent Priority = "URGENT"
)

// NormalizePriority maps arbitrary input to a valid priority, defaulting
// to NORMAL. Case-insensitive: clients send "urgent", stored rows carry
// "URGENT".
func NormalizePriority(s string) Priority {
	if strings.EqualFold(s, string(PriorityUrgent)) {
		return PriorityUrgent
	}
	return PriorityNormal
}

// Announcement is a post on the classroom board. ImageURL may be an
// external URL, an uploaded-file path or an inline data URI.
type Announcement struct {
	gorm.Model
	Title    string   `json:"title" gorm:"not null"`
	Content  string   `json:"content" gorm:"type:text"`
	Priority Priority `json:"priority" gorm:"type:varchar(10);not null;default:'NORMAL'"`
	ImageURL string   `json:"imageUrl,omitempty" gorm:"type:text"`
}
