package services

import (
	"context"
	"errors"
	"fmt"

	"chat-hub/internal/database"
	"chat-hub/internal/models"
)

var (
	ErrNotParticipant = errors.New("not a participant of this conversation")
	ErrNotFound       = errors.New("not found")
)

// ConversationService answers the access questions the hub asks before it
// joins, relays or toggles anything. Every call goes to the store; nothing is
// cached between requests.
type ConversationService struct {
	db database.ConversationRepository
}

func NewConversationService(db database.ConversationRepository) *ConversationService {
	return &ConversationService{db: db}
}

// CheckAccess returns ErrNotParticipant when userID may not see the
// conversation.
func (s *ConversationService) CheckAccess(ctx context.Context, conversationID, userID string) error {
	ok, err := s.db.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return fmt.Errorf("participant check failed: %w", err)
	}
	if !ok {
		return ErrNotParticipant
	}
	return nil
}

// Participants returns the conversation's participants once userID is
// confirmed to be one of them.
func (s *ConversationService) Participants(ctx context.Context, conversationID, userID string) ([]string, error) {
	participants, err := s.db.ConversationParticipants(ctx, conversationID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotParticipant
	}
	if err != nil {
		return nil, fmt.Errorf("participant lookup failed: %w", err)
	}

	for _, p := range participants {
		if p == userID {
			return participants, nil
		}
	}
	return nil, ErrNotParticipant
}

// MessageInConversation loads a message and checks it belongs to the
// conversation. A message from another conversation is reported as missing.
func (s *ConversationService) MessageInConversation(ctx context.Context, conversationID, messageID string) (*models.Message, error) {
	msg, err := s.db.GetMessage(ctx, messageID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("message lookup failed: %w", err)
	}
	if msg.ConversationID != conversationID {
		return nil, ErrNotFound
	}
	return msg, nil
}
