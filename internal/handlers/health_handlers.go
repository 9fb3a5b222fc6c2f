package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"chat-hub/internal/hub"
	"chat-hub/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

type ServerInfo struct {
	UptimeSeconds            int64     `json:"uptimeSeconds"`
	StartedAt                time.Time `json:"startedAt"`
	Connections              int       `json:"connections"`
	AuthenticatedConnections int       `json:"authenticatedConnections"`
	OnlineUsers              int       `json:"onlineUsers"`
	Rooms                    int       `json:"rooms"`
	CallSessions             int       `json:"callSessions"`
	Draining                 bool      `json:"draining"`
}

type HealthHandlers struct {
	hub *hub.Hub
}

func NewHealthHandlers(h *hub.Hub) *HealthHandlers {
	return &HealthHandlers{hub: h}
}

// Health answers 200 while serving and 503 once draining has begun.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.hub.StartedAt()).Round(time.Second).String(),
	}
	status := http.StatusOK
	if h.hub.Draining() {
		resp.Status = "draining"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (h *HealthHandlers) ServerInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats := h.hub.Stats()
	started := h.hub.StartedAt()
	writeJSON(w, http.StatusOK, ServerInfo{
		UptimeSeconds:            int64(time.Since(started).Seconds()),
		StartedAt:                started.UTC(),
		Connections:              stats.Connections,
		AuthenticatedConnections: stats.AuthenticatedConnections,
		OnlineUsers:              stats.OnlineUsers,
		Rooms:                    stats.Rooms,
		CallSessions:             stats.CallSessions,
		Draining:                 stats.Draining,
	})
}

// Metrics exposes the given registry, including the hub's collectors.
func Metrics(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write response", "error", err)
	}
}
