package hub

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chat-hub/internal/database"
	"chat-hub/internal/models"
	"chat-hub/internal/services"
)

// ReactionToggle identifies one (message, user, emoji) pair.
type ReactionToggle struct {
	ConversationID string
	MessageID      string
	UserID         string
	Emoji          string
}

func (t ReactionToggle) key() string {
	return t.MessageID + "\x00" + t.UserID + "\x00" + t.Emoji
}

// ReactionCoordinator toggles reactions against the store. It runs off the
// hub loop and keeps no state between calls besides the pair locks.
type ReactionCoordinator struct {
	store database.ReactionRepository
	convs *services.ConversationService
	locks keyedMutex
	now   func() time.Time
}

func NewReactionCoordinator(store database.ReactionRepository, convs *services.ConversationService) *ReactionCoordinator {
	return &ReactionCoordinator{
		store: store,
		convs: convs,
		now:   time.Now,
	}
}

// Toggle flips t and returns the message's reaction list afterwards, plus
// whether the pair was added. Nothing is published here.
func (rc *ReactionCoordinator) Toggle(ctx context.Context, t ReactionToggle) ([]models.Reaction, bool, error) {
	if t.ConversationID == "" || t.MessageID == "" || t.UserID == "" || t.Emoji == "" {
		return nil, false, ErrInvalidPayload
	}

	if err := rc.convs.CheckAccess(ctx, t.ConversationID, t.UserID); err != nil {
		return nil, false, storeError(err)
	}
	if _, err := rc.convs.MessageInConversation(ctx, t.ConversationID, t.MessageID); err != nil {
		return nil, false, storeError(err)
	}

	added, err := rc.flip(ctx, t)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrServerError, err)
	}

	reactions, err := rc.store.ListReactions(ctx, t.MessageID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrServerError, err)
	}
	return reactions, added, nil
}

func (rc *ReactionCoordinator) flip(ctx context.Context, t ReactionToggle) (bool, error) {
	unlock := rc.locks.Lock(t.key())
	defer unlock()

	exists, err := rc.store.FindReaction(ctx, t.MessageID, t.UserID, t.Emoji)
	if err != nil {
		return false, err
	}
	if exists {
		return false, rc.store.DeleteReaction(ctx, t.MessageID, t.UserID, t.Emoji)
	}
	return true, rc.store.InsertReaction(ctx, t.MessageID, models.Reaction{
		UserID:    t.UserID,
		Emoji:     t.Emoji,
		CreatedAt: rc.now(),
	})
}

// keyedMutex hands out one mutex per key and forgets it once nobody holds
// or waits on it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedEntry)
	}
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyedEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
