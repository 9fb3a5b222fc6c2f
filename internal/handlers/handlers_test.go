package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chat-hub/internal/auth"
	"chat-hub/internal/config"
	"chat-hub/internal/database"
	"chat-hub/internal/hub"
	"chat-hub/internal/models"
	"chat-hub/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type testServer struct {
	hub  *hub.Hub
	auth *auth.Service
	srv  *httptest.Server
}

func newTestServer(t *testing.T, secret string, origins ...string) *testServer {
	t.Helper()
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	reg := prometheus.NewRegistry()
	h := hub.NewHub(config.HubConfig{
		SendBuffer:          16,
		MaxMessageSize:      1 << 16,
		SweepInterval:       time.Hour,
		PresenceTTL:         4 * time.Hour,
		ShutdownDrainGrace:  10 * time.Millisecond,
		ShutdownTimeout:     time.Second,
		MaxCallParticipants: 2,
	}, hub.Options{
		Store:   database.NewMemoryStore(true),
		Metrics: hub.NewMetrics(reg),
		Logger:  logger.Discard(),
	})
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	authSvc := auth.NewService(config.JWTConfig{Secret: secret})
	routes := Routes(
		NewWebSocketHandlers(authSvc, h, origins, logger.Discard()),
		NewHealthHandlers(h),
		reg,
		origins,
	)
	srv := httptest.NewServer(routes)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return &testServer{hub: h, auth: authSvc, srv: srv}
}

func (s *testServer) wsURL(query string) string {
	u := "ws" + strings.TrimPrefix(s.srv.URL, "http") + "/ws"
	if query != "" {
		u += "?" + query
	}
	return u
}

func readEvent(t *testing.T, conn *websocket.Conn, event models.EventType) models.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var env models.Envelope
		require.NoError(t, conn.ReadJSON(&env))
		if env.Event == event {
			return env
		}
	}
}

func TestWebSocket_AuthenticateOverUpgradedSocket(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, "")

	conn, resp, err := websocket.DefaultDialer.Dial(s.wsURL(""), nil)
	req.NoError(err)
	req.Equal(http.StatusSwitchingProtocols, resp.StatusCode)
	defer conn.Close()

	req.NoError(conn.WriteJSON(map[string]any{
		"event": models.EventAuthenticate,
		"data":  models.AuthenticatePayload{UserID: "alice", DisplayName: "Alice"},
		"ack":   "a1",
	}))

	var users []models.OnlineUser
	req.NoError(json.Unmarshal(readEvent(t, conn, models.EventOnlineUsers).Data, &users))
	req.Equal([]models.OnlineUser{{UserID: "alice", DisplayName: "Alice", IsOnline: true}}, users)

	ack := readEvent(t, conn, models.EventAck)
	req.Equal("a1", ack.Ack)
}

func TestWebSocket_TokenRequiredWhenSecretSet(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, testSecret)

	_, resp, err := websocket.DefaultDialer.Dial(s.wsURL(""), nil)
	req.ErrorIs(err, websocket.ErrBadHandshake)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(s.wsURL("token=garbage"), nil)
	req.ErrorIs(err, websocket.ErrBadHandshake)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)

	token, err := s.auth.GenerateToken("alice", "Alice", time.Minute)
	req.NoError(err)
	header := http.Header{"Authorization": []string{"Bearer " + token}}
	conn, _, err := websocket.DefaultDialer.Dial(s.wsURL(""), header)
	req.NoError(err)
	defer conn.Close()

	// The verified subject is the only identity this socket may claim
	req.NoError(conn.WriteJSON(map[string]any{
		"event": models.EventAuthenticate,
		"data":  models.AuthenticatePayload{UserID: "mallory"},
	}))
	readEvent(t, conn, models.EventAuthError)

	req.NoError(conn.WriteJSON(map[string]any{
		"event": models.EventAuthenticate,
		"data":  models.AuthenticatePayload{UserID: "alice"},
	}))
	var users []models.OnlineUser
	req.NoError(json.Unmarshal(readEvent(t, conn, models.EventOnlineUsers).Data, &users))
	req.Len(users, 1)
	req.Equal("Alice", users[0].DisplayName)
}

func TestWebSocket_OriginAllowList(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, "", "https://chat.example.com")

	_, resp, err := websocket.DefaultDialer.Dial(s.wsURL(""), http.Header{"Origin": []string{"https://evil.example.com"}})
	req.ErrorIs(err, websocket.ErrBadHandshake)
	req.Equal(http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(s.wsURL(""), http.Header{"Origin": []string{"https://chat.example.com"}})
	req.NoError(err)
	conn.Close()
}

func TestWebSocket_DrainingRefusesUpgrades(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, "")

	conn, _, err := websocket.DefaultDialer.Dial(s.wsURL(""), nil)
	req.NoError(err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req.NoError(s.hub.Shutdown(ctx, "maintenance"))

	// The open socket heard the notice before it was closed
	var notice models.ShutdownNotice
	req.NoError(json.Unmarshal(readEvent(t, conn, models.EventServerShutdown).Data, &notice))
	req.Equal("maintenance", notice.Message)

	_, resp, err := websocket.DefaultDialer.Dial(s.wsURL(""), nil)
	req.ErrorIs(err, websocket.ErrBadHandshake)
	req.Equal(http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealthAndServerInfo(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, "")

	resp, err := http.Get(s.srv.URL + "/health")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("*", resp.Header.Get("Access-Control-Allow-Origin"))
	var health HealthResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&health))
	req.Equal("ok", health.Status)
	req.NotEmpty(health.Uptime)

	conn, _, err := websocket.DefaultDialer.Dial(s.wsURL(""), nil)
	req.NoError(err)
	defer conn.Close()
	req.NoError(conn.WriteJSON(map[string]any{
		"event": models.EventAuthenticate,
		"data":  models.AuthenticatePayload{UserID: "alice"},
	}))
	readEvent(t, conn, models.EventOnlineUsers)

	info := getServerInfo(t, s)
	req.Equal(1, info.Connections)
	req.Equal(1, info.AuthenticatedConnections)
	req.Equal(1, info.OnlineUsers)
	req.False(info.Draining)
	req.False(info.StartedAt.IsZero())
}

func getServerInfo(t *testing.T, s *testServer) ServerInfo {
	t.Helper()
	resp, err := http.Get(s.srv.URL + "/server-info")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var info ServerInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	return info
}

func TestMetricsEndpoint(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, "")

	conn, _, err := websocket.DefaultDialer.Dial(s.wsURL(""), nil)
	req.NoError(err)
	defer conn.Close()
	req.NoError(conn.WriteJSON(map[string]any{"event": models.EventHeartbeat, "ack": "h"}))
	readEvent(t, conn, models.EventAck)

	resp, err := http.Get(s.srv.URL + "/metrics")
	req.NoError(err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	req.NoError(err)
	req.Contains(string(body), "chathub_connections 1")
	req.Contains(string(body), `chathub_events_in_total{event="heartbeat"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	req := require.New(t)
	handler := CORS([]string{"https://chat.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	r := httptest.NewRequest(http.MethodOptions, "/health", nil)
	r.Header.Set("Origin", "https://chat.example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)
	req.Equal("https://chat.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	r = httptest.NewRequest(http.MethodOptions, "/health", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	req.Empty(w.Header().Get("Access-Control-Allow-Origin"))
}
