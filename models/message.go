package models

import "gorm.io/gorm"

// ChatMessage is a single message in the shared classroom chat.
// AuthorID is a weak reference: the account may have disappeared by the
// time the message is read.
type ChatMessage struct {
	gorm.Model
	AuthorID   uint   `json:"authorId"`
	Content    string `json:"content" gorm:"type:text;not null"`
	IsMandarin bool   `json:"isMandarin"`
	Pinyin     string `json:"pinyin,omitempty"`
}

// MessageView is a ChatMessage joined with its author's current profile,
// as delivered to subscribers.
type MessageView struct {
	ChatMessage
	Profile Profile `json:"profile"`
}
