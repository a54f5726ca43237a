package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	gorm.Model
	ConversationID uint   `gorm:"index;not null"`
	Role           string `gorm:"size:20;not null"` // "user" or "assistant"
	Text           string `gorm:"type:text"`
	// Image holds a bounded data URI. Only user messages carry one.
	Image     string    `gorm:"type:text"`
	Timestamp time.Time `gorm:"index"`
}
