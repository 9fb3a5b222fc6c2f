package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"chat-hub/internal/models"

	"github.com/samber/lo"
)

type reactionKey struct {
	messageID string
	userID    string
	emoji     string
}

// MemoryStore keeps everything in process memory. It backs tests and the
// --in-memory development mode.
type MemoryStore struct {
	mu           sync.Mutex
	open         bool
	participants map[string]map[string]struct{}
	messages     map[string]*models.Message
	reactions    map[reactionKey]models.Reaction
	presence     map[string]bool
	lastSeen     map[string]time.Time
}

// NewMemoryStore returns an empty store. When open is true any user asking
// to join a conversation becomes its participant.
func NewMemoryStore(open bool) *MemoryStore {
	return &MemoryStore{
		open:         open,
		participants: make(map[string]map[string]struct{}),
		messages:     make(map[string]*models.Message),
		reactions:    make(map[reactionKey]models.Reaction),
		presence:     make(map[string]bool),
		lastSeen:     make(map[string]time.Time),
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) AddParticipant(conversationID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addParticipantLocked(conversationID, userID)
}

func (s *MemoryStore) addParticipantLocked(conversationID, userID string) {
	if s.participants[conversationID] == nil {
		s.participants[conversationID] = make(map[string]struct{})
	}
	s.participants[conversationID][userID] = struct{}{}
}

func (s *MemoryStore) AddMessage(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[msg.ID] = &msg
}

// Online reports the last persisted presence status of a user.
func (s *MemoryStore) Online(userID string) (online bool, known bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	online, known = s.presence[userID]
	return online, known
}

func (s *MemoryStore) SetPresence(_ context.Context, userID string, online bool, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.lastSeen[userID]; ok && at.Before(last) {
		return nil
	}
	s.presence[userID] = online
	s.lastSeen[userID] = at
	return nil
}

func (s *MemoryStore) IsParticipant(_ context.Context, conversationID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open {
		s.addParticipantLocked(conversationID, userID)
		return true, nil
	}
	_, ok := s.participants[conversationID][userID]
	return ok, nil
}

func (s *MemoryStore) ConversationParticipants(_ context.Context, conversationID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, ok := s.participants[conversationID]
	if !ok || len(members) == 0 {
		return nil, ErrNotFound
	}
	ids := lo.Keys(members)
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) GetMessage(_ context.Context, messageID string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages[messageID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *msg
	return &cp, nil
}

func (s *MemoryStore) FindReaction(_ context.Context, messageID, userID, emoji string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.reactions[reactionKey{messageID, userID, emoji}]
	return ok, nil
}

func (s *MemoryStore) InsertReaction(_ context.Context, messageID string, reaction models.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := reactionKey{messageID, reaction.UserID, reaction.Emoji}
	if _, ok := s.reactions[key]; !ok {
		s.reactions[key] = reaction
	}
	return nil
}

func (s *MemoryStore) DeleteReaction(_ context.Context, messageID, userID, emoji string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reactions, reactionKey{messageID, userID, emoji})
	return nil
}

func (s *MemoryStore) ListReactions(_ context.Context, messageID string) ([]models.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Reaction{}
	for key, r := range s.reactions {
		if key.messageID == messageID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Emoji < out[j].Emoji
	})
	return out, nil
}

var (
	_ Store           = (*MemoryStore)(nil)
	_ MessageRecorder = (*MemoryStore)(nil)
)
var _ Store = (*PostgresDB)(nil)
