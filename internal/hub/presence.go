package hub

import (
	"time"

	"chat-hub/internal/models"
)

// sweep evicts presence records whose heartbeat is older than the TTL. An
// evicted user is announced offline once and their connections, presumed
// dead, are closed without a second announcement.
func (h *Hub) sweep(now time.Time) int {
	stale := h.registry.Stale(now.Add(-h.cfg.PresenceTTL))
	for _, rec := range stale {
		conns := h.registry.Evict(rec.UserID)
		h.metrics.PresenceEvictions.Inc()
		h.log.Info("presence expired", "user", rec.UserID,
			"last_heartbeat", rec.LastHeartbeatAt, "connections", len(conns))

		h.goOffline(rec)
		for _, c := range conns {
			h.disconnect(c)
		}
	}
	return len(stale)
}

// OnlineUsers returns the presence snapshot, read on the loop.
func (h *Hub) OnlineUsers() []models.OnlineUser {
	var users []models.OnlineUser
	h.exec(func() {
		users = h.registry.Snapshot()
	})
	return users
}
