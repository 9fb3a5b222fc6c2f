package hub

import (
	"encoding/json"

	"chat-hub/internal/models"
)

// handleTyping relays typing:start and typing:stop to the rest of the
// conversation room. Anything that does not qualify is dropped without a
// reply; clients expire stale indicators on their own.
func (h *Hub) handleTyping(c *Conn, env *models.Envelope) (any, error) {
	if !c.authenticated() || len(env.Data) == 0 {
		return nil, nil
	}

	var p models.TypingPayload
	if err := json.Unmarshal(env.Data, &p); err != nil || p.ConversationID == "" {
		return nil, nil
	}

	room := ConversationRoom(p.ConversationID)
	if !h.rooms.IsMember(c, room) {
		return nil, nil
	}
	h.touch(c)

	userName := p.UserName
	if userName == "" {
		userName = c.displayName
	}
	h.fanout.PublishToRoom(room, env.Event, models.TypingPayload{
		ConversationID: p.ConversationID,
		UserID:         c.userID,
		UserName:       userName,
	}, c)
	return nil, nil
}
