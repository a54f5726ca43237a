package store

import (
	"errors"
	"fmt"
	"log"
	"time"

	"AgriBot/models"

	"gorm.io/gorm"
)

// ErrNotFound reports an unknown conversation id.
var ErrNotFound = errors.New("conversation not found")

// Store is the durable conversation/message layer. All orderings the HTTP
// surface relies on are produced here, not by callers.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateConversation creates a conversation in the given language. An empty
// title falls back to the placeholder. LastActivityAt starts at creation time
// so a fresh conversation sorts to the top of the sidebar.
func (s *Store) CreateConversation(language, title string) (*models.Conversation, error) {
	if title == "" {
		title = models.DefaultTitle
	}
	conv := models.Conversation{
		Title:          title,
		Language:       language,
		LastActivityAt: time.Now().UTC(),
	}
	if err := s.db.Create(&conv).Error; err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &conv, nil
}

// ListConversations returns all conversations, most recently active first.
// Ties break by id descending so the newest conversation wins.
func (s *Store) ListConversations() ([]models.Conversation, error) {
	var convs []models.Conversation
	if err := s.db.Order("last_activity_at DESC, id DESC").Find(&convs).Error; err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return convs, nil
}

// GetConversation loads one conversation or ErrNotFound.
func (s *Store) GetConversation(id uint) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.db.First(&conv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return &conv, nil
}

// GetMessages returns a conversation's messages oldest first, ties broken by
// insertion order. Unknown conversation ids yield ErrNotFound rather than an
// empty list.
func (s *Store) GetMessages(conversationID uint) ([]models.Message, error) {
	if _, err := s.GetConversation(conversationID); err != nil {
		return nil, err
	}
	var msgs []models.Message
	err := s.db.Where("conversation_id = ?", conversationID).
		Order("timestamp ASC, id ASC").Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	return msgs, nil
}

// AppendMessage persists a message and bumps the parent conversation's
// LastActivityAt to the same instant. Both writes happen in one transaction:
// no reader ever sees the message without the activity bump or vice versa,
// and concurrent appends to the same conversation serialize here.
func (s *Store) AppendMessage(conversationID uint, role, text, image string) (*models.Message, error) {
	now := time.Now().UTC()
	msg := models.Message{
		ConversationID: conversationID,
		Role:           role,
		Text:           text,
		Image:          image,
		Timestamp:      now,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var conv models.Conversation
		if err := tx.First(&conv, conversationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		return tx.Model(&conv).Update("last_activity_at", now).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	log.Printf("[store] appended %s message %d to conversation %d", role, msg.ID, conversationID)
	return &msg, nil
}
