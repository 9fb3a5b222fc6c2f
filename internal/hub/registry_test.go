package hub

import (
	"testing"
	"time"

	"chat-hub/internal/models"

	"github.com/stretchr/testify/require"
)

func testConn(id string) *Conn {
	return &Conn{id: id, send: make(chan []byte, 8)}
}

func record(userID string, at time.Time) models.PresenceRecord {
	return models.PresenceRecord{UserID: userID, DisplayName: userID, LastHeartbeatAt: at}
}

func TestRegistry_LastConnectionTakesUserOffline(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()
	now := time.Now()
	laptop, phone := testConn("laptop"), testConn("phone")

	r.Add(laptop)
	r.Add(phone)
	req.Nil(r.Bind(laptop, record("alice", now)))
	req.Nil(r.Bind(phone, record("alice", now)))
	req.Equal(1, r.OnlineUsers())
	req.Equal(2, r.Authenticated())

	req.Nil(r.Remove(laptop))
	req.Equal(1, r.OnlineUsers())

	offline := r.Remove(phone)
	req.NotNil(offline)
	req.Equal("alice", offline.UserID)
	req.Zero(r.OnlineUsers())
	req.Zero(r.Len())

	// Removing again is a no-op
	req.Nil(r.Remove(phone))
}

func TestRegistry_RebindDetachesPreviousUser(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()
	c := testConn("c")
	r.Add(c)

	r.Bind(c, record("alice", time.Now()))
	offline := r.Bind(c, record("bob", time.Now()))

	req.NotNil(offline)
	req.Equal("alice", offline.UserID)
	req.Equal([]models.OnlineUser{{UserID: "bob", DisplayName: "bob", IsOnline: true}}, r.Snapshot())
	req.Empty(r.ConnsOf("alice"))
}

func TestRegistry_StaleAndEvict(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()
	now := time.Now()
	a, b := testConn("a"), testConn("b")
	r.Add(a)
	r.Add(b)
	r.Bind(a, record("alice", now.Add(-10*time.Minute)))
	r.Bind(b, record("bob", now))

	stale := r.Stale(now.Add(-5 * time.Minute))
	req.Len(stale, 1)
	req.Equal("alice", stale[0].UserID)

	// Touch moves the heartbeat forward only
	req.True(r.Touch("alice", now))
	req.True(r.Touch("alice", now.Add(-time.Hour)))
	req.Empty(r.Stale(now.Add(-5 * time.Minute)))
	req.False(r.Touch("nobody", now))

	conns := r.Evict("alice")
	req.Equal([]*Conn{a}, conns)
	req.NotContains(r.presence, "alice")

	// The evicted user's connection leaves without a second offline transition
	req.Nil(r.Remove(a))
}

func TestRegistry_SnapshotSorted(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"carol", "alice", "bob"} {
		c := testConn(id)
		r.Add(c)
		r.Bind(c, record(id, time.Now()))
	}

	ids := []string{}
	for _, u := range r.Snapshot() {
		require.True(t, u.IsOnline)
		ids = append(ids, u.UserID)
	}
	require.Equal(t, []string{"alice", "bob", "carol"}, ids)
}
