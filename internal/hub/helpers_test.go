package hub

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"chat-hub/internal/auth"
	"chat-hub/internal/config"
	"chat-hub/internal/database"
	"chat-hub/internal/models"
	"chat-hub/pkg/logger"

	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

func testConfig() config.HubConfig {
	return config.HubConfig{
		SendBuffer:          64,
		MaxMessageSize:      1 << 16,
		SweepInterval:       time.Hour,
		PresenceTTL:         4 * time.Hour,
		ShutdownDrainGrace:  10 * time.Millisecond,
		ShutdownTimeout:     time.Second,
		ShutdownMessage:     "bye",
		MaxCallParticipants: 2,
	}
}

// newTestHub starts a hub on store. A nil store admits everyone to every
// conversation.
func newTestHub(t *testing.T, store database.Store, tweak ...func(*config.HubConfig)) *Hub {
	t.Helper()
	cfg := testConfig()
	for _, fn := range tweak {
		fn(&cfg)
	}
	if store == nil {
		store = database.NewMemoryStore(true)
	}

	h := NewHub(cfg, Options{Store: store, StoreTimeout: time.Second, Logger: logger.Discard()})
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-h.done
	})
	return h
}

// slowStore delays participant and reaction lookups. delay receives the
// zero-based number of the delayed call.
type slowStore struct {
	*database.MemoryStore
	calls atomic.Int64
	delay func(n int) time.Duration
}

// newestFirst delays early calls the longest, so concurrent lookups would
// finish in reverse order.
func newestFirst(n int) time.Duration {
	return time.Duration(max(0, 40-n)) * time.Millisecond
}

func (s *slowStore) wait() {
	n := int(s.calls.Add(1) - 1)
	time.Sleep(s.delay(n))
}

func (s *slowStore) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	s.wait()
	return s.MemoryStore.IsParticipant(ctx, conversationID, userID)
}

func (s *slowStore) ConversationParticipants(ctx context.Context, conversationID string) ([]string, error) {
	s.wait()
	return s.MemoryStore.ConversationParticipants(ctx, conversationID)
}

func (s *slowStore) FindReaction(ctx context.Context, messageID, userID, emoji string) (bool, error) {
	s.wait()
	return s.MemoryStore.FindReaction(ctx, messageID, userID, emoji)
}

type testClient struct {
	t *testing.T
	h *Hub
	c *Conn
}

func connect(t *testing.T, h *Hub) *testClient {
	return connectVerified(t, h, nil)
}

func connectVerified(t *testing.T, h *Hub, identity *auth.Identity) *testClient {
	t.Helper()
	c := newConn(h, nil, "127.0.0.1:0", identity)
	require.NoError(t, h.Register(c))
	return &testClient{t: t, h: h, c: c}
}

// login connects and authenticates as userID, consuming the snapshot and ack.
func login(t *testing.T, h *Hub, userID string) *testClient {
	t.Helper()
	tc := connect(t, h)
	tc.send(models.EventAuthenticate, models.AuthenticatePayload{UserID: userID, DisplayName: userID}, "auth")
	tc.expect(models.EventOnlineUsers)
	tc.expectAck("auth", true)
	return tc
}

func (tc *testClient) send(event models.EventType, data any, ack string) {
	tc.t.Helper()
	env := &models.Envelope{Event: event, Ack: ack}
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(tc.t, err)
		env.Data = raw
	}
	require.True(tc.t, tc.h.submit(inbound{conn: tc.c, env: env}), "hub stopped")
}

func (tc *testClient) sendRaw(raw string) {
	tc.t.Helper()
	env, err := parseEnvelope([]byte(raw))
	require.True(tc.t, tc.h.submit(inbound{conn: tc.c, env: env, err: err}), "hub stopped")
}

// expect skips frames until one with the given event arrives.
func (tc *testClient) expect(event models.EventType) models.Envelope {
	tc.t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case raw, ok := <-tc.c.send:
			require.True(tc.t, ok, "connection closed while waiting for %s", event)
			var env models.Envelope
			require.NoError(tc.t, json.Unmarshal(raw, &env))
			if env.Event == event {
				return env
			}
		case <-deadline:
			tc.t.Fatalf("timed out waiting for %s", event)
			return models.Envelope{}
		}
	}
}

// expectNone fails if event shows up within a short window.
func (tc *testClient) expectNone(event models.EventType) {
	tc.t.Helper()
	deadline := time.After(100 * time.Millisecond)
	for {
		select {
		case raw, ok := <-tc.c.send:
			if !ok {
				return
			}
			var env models.Envelope
			require.NoError(tc.t, json.Unmarshal(raw, &env))
			require.NotEqual(tc.t, event, env.Event, "unexpected %s: %s", event, env.Data)
		case <-deadline:
			return
		}
	}
}

func (tc *testClient) expectAck(id string, ok bool) models.AckPayload {
	tc.t.Helper()
	for {
		env := tc.expect(models.EventAck)
		if env.Ack != id {
			continue
		}
		ack := data[models.AckPayload](tc.t, env)
		require.Equal(tc.t, ok, ack.OK, "ack %s: %+v", id, ack)
		return ack
	}
}

// expectClosed drains until the hub closes the queue.
func (tc *testClient) expectClosed() {
	tc.t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case _, ok := <-tc.c.send:
			if !ok {
				return
			}
		case <-deadline:
			tc.t.Fatal("connection was not closed")
		}
	}
}

func data[T any](t *testing.T, env models.Envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func sessionState(h *Hub, roomID string) (NegotiationState, bool) {
	var state NegotiationState
	var found bool
	h.exec(func() {
		if s, ok := h.calls.Get(roomID); ok {
			state, found = s.State, true
		}
	})
	return state, found
}
