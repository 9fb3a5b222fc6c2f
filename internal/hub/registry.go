package hub

import (
	"sort"
	"time"

	"chat-hub/internal/models"

	"github.com/samber/lo"
)

// Registry tracks live connections, which user each belongs to and the
// users' presence records. It is owned by the hub loop.
type Registry struct {
	conns    map[string]*Conn
	byUser   map[string]map[string]*Conn
	presence map[string]*models.PresenceRecord
}

func NewRegistry() *Registry {
	return &Registry{
		conns:    make(map[string]*Conn),
		byUser:   make(map[string]map[string]*Conn),
		presence: make(map[string]*models.PresenceRecord),
	}
}

// Add registers an unauthenticated connection.
func (r *Registry) Add(c *Conn) {
	r.conns[c.id] = c
}

// Has reports whether c itself is registered, not merely a connection with
// the same id.
func (r *Registry) Has(c *Conn) bool {
	return r.conns[c.id] == c
}

// Bind attaches c to rec.UserID and replaces the user's presence record.
// When c was bound to a different user it is detached first; the returned
// record is that user's, non-nil only if they went offline as a result.
func (r *Registry) Bind(c *Conn, rec models.PresenceRecord) *models.PresenceRecord {
	var offline *models.PresenceRecord
	if c.userID != "" && c.userID != rec.UserID {
		offline = r.detach(c)
	}

	c.userID = rec.UserID
	c.displayName = rec.DisplayName
	c.avatarRef = rec.AvatarRef

	if r.byUser[rec.UserID] == nil {
		r.byUser[rec.UserID] = make(map[string]*Conn)
	}
	r.byUser[rec.UserID][c.id] = c
	r.presence[rec.UserID] = &rec
	return offline
}

// Remove unregisters c. The returned record is non-nil only when this call
// removed the user's presence record.
func (r *Registry) Remove(c *Conn) *models.PresenceRecord {
	if !r.Has(c) {
		return nil
	}
	delete(r.conns, c.id)
	if c.userID == "" {
		return nil
	}
	return r.detach(c)
}

func (r *Registry) detach(c *Conn) *models.PresenceRecord {
	userID := c.userID
	c.userID = ""

	conns := r.byUser[userID]
	delete(conns, c.id)
	if len(conns) > 0 {
		return nil
	}
	delete(r.byUser, userID)

	rec, ok := r.presence[userID]
	if !ok {
		return nil
	}
	delete(r.presence, userID)
	return rec
}

// Touch refreshes a user's heartbeat. It reports false when the user has no
// record.
func (r *Registry) Touch(userID string, at time.Time) bool {
	rec, ok := r.presence[userID]
	if !ok {
		return false
	}
	if at.After(rec.LastHeartbeatAt) {
		rec.LastHeartbeatAt = at
	}
	return true
}

// Stale returns records whose last heartbeat is before cutoff.
func (r *Registry) Stale(cutoff time.Time) []models.PresenceRecord {
	var stale []models.PresenceRecord
	for _, rec := range r.presence {
		if rec.LastHeartbeatAt.Before(cutoff) {
			stale = append(stale, *rec)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].UserID < stale[j].UserID })
	return stale
}

// Evict deletes a user's record and returns the connections still bound to
// it. Removing those connections afterwards reports no further offline
// transition.
func (r *Registry) Evict(userID string) []*Conn {
	delete(r.presence, userID)
	return r.ConnsOf(userID)
}

// Snapshot lists every online user sorted by id.
func (r *Registry) Snapshot() []models.OnlineUser {
	users := lo.MapToSlice(r.presence, func(_ string, rec *models.PresenceRecord) models.OnlineUser {
		return models.OnlineUser{
			UserID:      rec.UserID,
			DisplayName: rec.DisplayName,
			AvatarRef:   rec.AvatarRef,
			IsOnline:    true,
		}
	})
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users
}

// ConnsOf returns the connections bound to userID ordered by id.
func (r *Registry) ConnsOf(userID string) []*Conn {
	conns := lo.Values(r.byUser[userID])
	sort.Slice(conns, func(i, j int) bool { return conns[i].id < conns[j].id })
	return conns
}

// All returns every registered connection.
func (r *Registry) All() []*Conn {
	return lo.Values(r.conns)
}

func (r *Registry) Len() int { return len(r.conns) }

func (r *Registry) OnlineUsers() int { return len(r.presence) }

func (r *Registry) Authenticated() int {
	return lo.CountBy(lo.Values(r.conns), func(c *Conn) bool { return c.authenticated() })
}
