package models

import (
	"gorm.io/gorm"
)

// Message belongs to exactly one conversation and is immutable once created.
// IsFromUser distinguishes the anonymous visitor from staff replies.
type Message struct {
	gorm.Model
	ConversationID uint   `json:"conversationID" gorm:"index"`
	Content        string `json:"content" gorm:"type:text"`
	IsFromUser     bool   `json:"isFromUser"`
}
