package hub

import (
	"strings"

	"github.com/samber/lo"
)

const (
	conversationPrefix = "conversation:"
	callPrefix         = "call:"
)

func ConversationRoom(conversationID string) string { return conversationPrefix + conversationID }

func CallRoom(roomID string) string { return callPrefix + roomID }

// Rooms is the membership table, indexed both ways so a room's members and a
// connection's rooms are each one lookup away.
type Rooms struct {
	members map[string]map[string]*Conn
	joined  map[string]map[string]struct{}
}

func NewRooms() *Rooms {
	return &Rooms{
		members: make(map[string]map[string]*Conn),
		joined:  make(map[string]map[string]struct{}),
	}
}

// Join is idempotent. It reports whether c was newly added.
func (r *Rooms) Join(c *Conn, room string) bool {
	if c == nil || strings.TrimSpace(room) == "" {
		return false
	}
	if r.IsMember(c, room) {
		return false
	}

	if r.members[room] == nil {
		r.members[room] = make(map[string]*Conn)
	}
	r.members[room][c.id] = c

	if r.joined[c.id] == nil {
		r.joined[c.id] = make(map[string]struct{})
	}
	r.joined[c.id][room] = struct{}{}
	return true
}

// Leave is idempotent. It reports whether c was a member.
func (r *Rooms) Leave(c *Conn, room string) bool {
	if !r.IsMember(c, room) {
		return false
	}

	delete(r.members[room], c.id)
	if len(r.members[room]) == 0 {
		delete(r.members, room)
	}

	delete(r.joined[c.id], room)
	if len(r.joined[c.id]) == 0 {
		delete(r.joined, c.id)
	}
	return true
}

// LeaveAll removes c from every room and returns the rooms it was in.
func (r *Rooms) LeaveAll(c *Conn) []string {
	rooms := lo.Keys(r.joined[c.id])
	for _, room := range rooms {
		r.Leave(c, room)
	}
	return rooms
}

func (r *Rooms) IsMember(c *Conn, room string) bool {
	if c == nil {
		return false
	}
	member, ok := r.members[room][c.id]
	return ok && member == c
}

// Members returns the room's connections in no particular order.
func (r *Rooms) Members(room string) []*Conn {
	return lo.Values(r.members[room])
}

func (r *Rooms) RoomsOf(c *Conn) []string {
	return lo.Keys(r.joined[c.id])
}

func (r *Rooms) Len() int { return len(r.members) }
