package models

import (
	"encoding/json"
	"time"
)

type PresenceRecord struct {
	UserID          string    `json:"userId"`
	DisplayName     string    `json:"displayName,omitempty"`
	AvatarRef       string    `json:"avatarRef,omitempty"`
	LastHeartbeatAt time.Time `json:"lastHeartbeatAt"`
}

// Message is the subset of a persisted message record the hub reads. The
// full record is relayed as Raw.
type Message struct {
	ID             string          `json:"id"`
	ConversationID string          `json:"conversationId"`
	SenderID       string          `json:"senderId,omitempty"`
	Content        string          `json:"content,omitempty"`
	Type           string          `json:"type,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	Raw            json.RawMessage `json:"-"`
}

type Reaction struct {
	UserID    string    `json:"userId"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"createdAt"`
}

type ConversationSummary struct {
	ID          string          `json:"id"`
	LastMessage json.RawMessage `json:"lastMessage"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
