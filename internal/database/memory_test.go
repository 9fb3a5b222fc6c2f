package database

import (
	"context"
	"testing"
	"time"

	"chat-hub/internal/models"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Participants(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := NewMemoryStore(false)

	// Given a conversation with two participants
	store.AddParticipant("c1", "bob")
	store.AddParticipant("c1", "alice")

	// Then they are listed in order
	ids, err := store.ConversationParticipants(ctx, "c1")
	req.NoError(err)
	req.Equal([]string{"alice", "bob"}, ids)

	// And strangers are not participants
	ok, err := store.IsParticipant(ctx, "c1", "mallory")
	req.NoError(err)
	req.False(ok)

	// And unknown conversations are not found
	_, err = store.ConversationParticipants(ctx, "nope")
	req.ErrorIs(err, ErrNotFound)
}

func TestMemoryStore_OpenModeAdmitsEveryone(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := NewMemoryStore(true)

	ok, err := store.IsParticipant(ctx, "c1", "alice")
	req.NoError(err)
	req.True(ok)

	ids, err := store.ConversationParticipants(ctx, "c1")
	req.NoError(err)
	req.Equal([]string{"alice"}, ids)
}

func TestMemoryStore_ReactionsUniqueByPair(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := NewMemoryStore(false)
	now := time.Now()

	// When the same pair is inserted twice
	req.NoError(store.InsertReaction(ctx, "m1", models.Reaction{UserID: "alice", Emoji: "👍", CreatedAt: now}))
	req.NoError(store.InsertReaction(ctx, "m1", models.Reaction{UserID: "alice", Emoji: "👍", CreatedAt: now.Add(time.Second)}))
	req.NoError(store.InsertReaction(ctx, "m1", models.Reaction{UserID: "bob", Emoji: "👍", CreatedAt: now.Add(time.Second)}))
	req.NoError(store.InsertReaction(ctx, "m2", models.Reaction{UserID: "alice", Emoji: "🎉", CreatedAt: now}))

	// Then it is stored once
	list, err := store.ListReactions(ctx, "m1")
	req.NoError(err)
	req.Len(list, 2)
	req.Equal("alice", list[0].UserID)
	req.Equal("bob", list[1].UserID)

	// And deleting removes only that pair
	req.NoError(store.DeleteReaction(ctx, "m1", "alice", "👍"))
	found, err := store.FindReaction(ctx, "m1", "alice", "👍")
	req.NoError(err)
	req.False(found)
	found, err = store.FindReaction(ctx, "m2", "alice", "🎉")
	req.NoError(err)
	req.True(found)
}

func TestMemoryStore_GetMessage(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := NewMemoryStore(false)
	store.AddMessage(models.Message{ID: "m1", ConversationID: "c1", Content: "hi"})

	msg, err := store.GetMessage(ctx, "m1")
	req.NoError(err)
	req.Equal("c1", msg.ConversationID)

	_, err = store.GetMessage(ctx, "m404")
	req.ErrorIs(err, ErrNotFound)
}

func TestMemoryStore_SetPresenceIgnoresOlderWrites(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := NewMemoryStore(false)
	now := time.Now()

	req.NoError(store.SetPresence(ctx, "alice", false, now))
	req.NoError(store.SetPresence(ctx, "alice", true, now.Add(-time.Second)))

	online, known := store.Online("alice")
	req.True(known)
	req.False(online)
}
