package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"AgriBot/models"
	"AgriBot/pkg/store"
)

var (
	// ErrEmptySubmission reports a submission carrying neither text nor image.
	ErrEmptySubmission = errors.New("a submission needs text or an image")
	// ErrConversationResolution reports that a conversation could not be
	// created for a first message. Nothing is persisted in that case.
	ErrConversationResolution = errors.New("failed to resolve conversation")
)

// SubmissionResult is the outcome of one orchestrated user turn.
type SubmissionResult struct {
	ConversationID uint
	Reply          *models.Message
	// ReplySaved is false when the reply was delivered to the caller but
	// could not be persisted; a reload will then show a one-sided exchange.
	ReplySaved bool
}

// ChatService drives one user submission through the fixed pipeline:
// resolve conversation, persist the user message, invoke inference, persist
// the reply. Each step's failure behavior is deliberate:
//   - resolution failure aborts before anything is persisted
//   - a failed inference call never rolls back the user's own message
//   - a failed reply persist still returns the reply, flagged unsaved
type ChatService struct {
	store *store.Store
	ai    *InferenceService
}

func NewChatService(st *store.Store, ai *InferenceService) *ChatService {
	return &ChatService{store: st, ai: ai}
}

func (s *ChatService) HandleSubmission(ctx context.Context, conversationID *uint, text, image, language string) (*SubmissionResult, error) {
	text = strings.TrimSpace(text)
	if text == "" && image == "" {
		return nil, ErrEmptySubmission
	}

	var convID uint
	if conversationID != nil {
		conv, err := s.store.GetConversation(*conversationID)
		if err != nil {
			return nil, err
		}
		convID = conv.ID
	} else {
		conv, err := s.store.CreateConversation(language, deriveTitle(text))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConversationResolution, err)
		}
		convID = conv.ID
	}

	if _, err := s.store.AppendMessage(convID, models.RoleUser, text, image); err != nil {
		return nil, err
	}

	query := text
	if query == "" {
		query = "Analyze this image"
	}
	reply, err := s.ai.Ask(ctx, query, image, language)
	if err != nil {
		// The user message stays persisted; resubmitting is the client's call.
		return nil, err
	}

	msg, err := s.store.AppendMessage(convID, models.RoleAssistant, reply, "")
	if err != nil {
		log.Printf("[chat] reply for conversation %d delivered but not saved: %v", convID, err)
		unsaved := &models.Message{
			ConversationID: convID,
			Role:           models.RoleAssistant,
			Text:           reply,
			Timestamp:      time.Now().UTC(),
		}
		return &SubmissionResult{ConversationID: convID, Reply: unsaved, ReplySaved: false}, nil
	}
	return &SubmissionResult{ConversationID: convID, Reply: msg, ReplySaved: true}, nil
}

// deriveTitle shortens the first message into a sidebar title. Rune-safe so
// Devanagari and Gurmukhi text is never split mid-character.
func deriveTitle(text string) string {
	r := []rune(strings.TrimSpace(text))
	if len(r) == 0 {
		return ""
	}
	if len(r) > 30 {
		return string(r[:30]) + "..."
	}
	return string(r)
}
