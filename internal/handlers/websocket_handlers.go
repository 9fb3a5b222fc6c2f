package handlers

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"chat-hub/internal/auth"
	"chat-hub/internal/hub"

	"github.com/gorilla/websocket"
)

type WebSocketHandlers struct {
	authService *auth.Service
	hub         *hub.Hub
	origins     []string
	log         *slog.Logger
	upgrader    websocket.Upgrader
}

// NewWebSocketHandlers builds the upgrade endpoint. An origin list containing
// "*" accepts any origin.
func NewWebSocketHandlers(authService *auth.Service, h *hub.Hub, allowedOrigins []string, log *slog.Logger) *WebSocketHandlers {
	if log == nil {
		log = slog.Default()
	}
	wh := &WebSocketHandlers{
		authService: authService,
		hub:         h,
		origins:     allowedOrigins,
		log:         log,
	}
	wh.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     wh.checkOrigin,
	}
	return wh
}

func (h *WebSocketHandlers) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(h.origins, "*") {
		return true
	}
	return slices.Contains(h.origins, origin)
}

func (h *WebSocketHandlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub.Draining() {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}

	// Without a configured secret, identity is asserted later via authenticate
	var identity *auth.Identity
	if h.authService != nil && h.authService.Enabled() {
		id, err := h.authService.IdentityFromRequest(r)
		if err != nil {
			h.log.Debug("rejected upgrade", "remote", r.RemoteAddr, "error", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		identity = id
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	if _, err := h.hub.Serve(conn, r.RemoteAddr, identity); err != nil {
		h.log.Info("refused connection", "remote", r.RemoteAddr, "error", err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server is shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
	}
}
