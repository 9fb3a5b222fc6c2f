package hub

import (
	"encoding/json"
	"strings"
	"testing"

	"chat-hub/internal/models"

	"github.com/stretchr/testify/require"
)

func TestParseEnvelope(t *testing.T) {
	req := require.New(t)

	env, err := parseEnvelope([]byte(`{"event":"typing:start","data":{"conversationId":"c1"},"ack":"7"}`))
	req.NoError(err)
	req.Equal(models.EventTypingStart, env.Event)
	req.Equal("7", env.Ack)
	req.JSONEq(`{"conversationId":"c1"}`, string(env.Data))

	for _, raw := range []string{
		`[]`,
		`{"data":{}}`,
		`{"event":""}`,
		`{"event":42}`,
		`{"event":"webrtc:offer","data":{"sdp":"x"}}`,
		`{"event":"webrtc:ice-candidate"}`,
	} {
		_, err := parseEnvelope([]byte(raw))
		req.ErrorIs(err, ErrInvalidPayload, raw)
	}
}

func TestIdentityValidation(t *testing.T) {
	for _, id := range []string{"alice", "u_123", "user@example.com", "google:1234", "a"} {
		require.True(t, ValidIdentity(id), id)
	}
	for _, id := range []string{"", " alice", ".alice", "a b", "alice\n", strings.Repeat("a", 129)} {
		require.False(t, ValidIdentity(id), id)
	}

	// The validator tag applies the same rule to decoded payloads
	var p models.AuthenticatePayload
	require.NoError(t, decode(json.RawMessage(`{"userId":"google:1234"}`), &p))
	require.ErrorIs(t, decode(json.RawMessage(`{"userId":".alice"}`), &p), ErrInvalidPayload)
}

func TestDecodeConversationID(t *testing.T) {
	req := require.New(t)

	id, err := decodeConversationID(json.RawMessage(`"c1"`))
	req.NoError(err)
	req.Equal("c1", id)

	id, err = decodeConversationID(json.RawMessage(`{"conversationId":"c2"}`))
	req.NoError(err)
	req.Equal("c2", id)

	for _, raw := range []string{`""`, `{}`, `42`, `"` + strings.Repeat("x", 129) + `"`} {
		_, err := decodeConversationID(json.RawMessage(raw))
		req.ErrorIs(err, ErrInvalidPayload, raw)
	}
}

func TestParseMessage(t *testing.T) {
	req := require.New(t)

	msg, err := parseMessage(json.RawMessage(`{"id":"m1","conversationId":"c1","senderId":"alice","createdAt":"2026-01-02T03:04:05.123Z","content":"hi"}`))
	req.NoError(err)
	req.Equal("m1", msg.ID)
	req.Equal("alice", msg.SenderID)
	req.Equal(123_000_000, msg.CreatedAt.Nanosecond())
	req.Contains(string(msg.Raw), `"content":"hi"`)

	// Populated sender objects and numeric ids are carried but not interpreted
	msg, err = parseMessage(json.RawMessage(`{"id":7,"conversationId":"c1","senderId":{"id":"alice"},"createdAt":1700000000}`))
	req.NoError(err)
	req.Empty(msg.ID)
	req.Empty(msg.SenderID)
	req.True(msg.CreatedAt.IsZero())

	_, err = parseMessage(json.RawMessage(`{"content":"hi"}`))
	req.ErrorIs(err, ErrInvalidPayload)
}
