package models

import (
	"gorm.io/gorm"
)

const (
	ConversationOpen       = "OPEN"
	ConversationInProgress = "IN_PROGRESS"
	ConversationClosed     = "CLOSED"
)

// Conversation is an anonymous support thread. The numeric ID stays internal;
// visitors only ever see the UUID.
type Conversation struct {
	gorm.Model
	UUID     string    `json:"uuid" gorm:"type:varchar(36);uniqueIndex"`
	Status   string    `json:"status" gorm:"type:varchar(20);default:OPEN;index"` // OPEN, IN_PROGRESS, CLOSED
	UserID   *uint     `json:"userID" gorm:"index"`                               // assigned staff member, set on first reply
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Messages []Message `json:"messages,omitempty" gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

func (c *Conversation) IsClosed() bool {
	return c.Status == ConversationClosed
}
