package database

import (
	"context"
	"errors"
	"time"

	"chat-hub/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/store_mock.go -package=mocks

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

type PresenceRepository interface {
	SetPresence(ctx context.Context, userID string, online bool, at time.Time) error
}

type ConversationRepository interface {
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
	ConversationParticipants(ctx context.Context, conversationID string) ([]string, error)
	GetMessage(ctx context.Context, messageID string) (*models.Message, error)
}

type ReactionRepository interface {
	FindReaction(ctx context.Context, messageID, userID, emoji string) (bool, error)
	InsertReaction(ctx context.Context, messageID string, reaction models.Reaction) error
	DeleteReaction(ctx context.Context, messageID, userID, emoji string) error
	ListReactions(ctx context.Context, messageID string) ([]models.Reaction, error)
}

// MessageRecorder is implemented by stores that only know the messages the
// hub relays through them.
type MessageRecorder interface {
	AddMessage(msg models.Message)
}

type Store interface {
	PresenceRepository
	ConversationRepository
	ReactionRepository
	Close() error
}
