package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultTitle is used when a conversation is created without an explicit
// title and no message text is available to derive one from.
const DefaultTitle = "New Chat"

type Conversation struct {
	gorm.Model
	Title          string    `gorm:"size:200"`
	Language       string    `gorm:"size:40;not null"`
	LastActivityAt time.Time `gorm:"index"`
	Messages       []Message `gorm:"constraint:OnDelete:CASCADE"`
}

// SupportedLanguages is the fixed set of languages the assistant answers in.
var SupportedLanguages = []string{
	"Hindi", "English", "Punjabi", "Marathi", "Telugu", "Bhojpuri", "Gujarati",
}

func IsSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
