package hub

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"chat-hub/internal/database"
	"chat-hub/internal/models"
)

// handlerFunc handles one inbound event on the loop. A non-nil ack is sent
// when the client asked for one; handlers that finish asynchronously return
// (nil, nil) and acknowledge later.
type handlerFunc func(c *Conn, env *models.Envelope) (ack any, err error)

func (h *Hub) routes() map[models.EventType]handlerFunc {
	return map[models.EventType]handlerFunc{
		models.EventAuthenticate:      h.handleAuthenticate,
		models.EventHeartbeat:         h.handleHeartbeat,
		models.EventJoinConversation:  h.handleJoinConversation,
		models.EventLeaveConversation: h.handleLeaveConversation,
		models.EventMessageSend:       h.handleMessageSend,
		models.EventReactionToggle:    h.handleReactionToggle,
		models.EventTypingStart:       h.handleTyping,
		models.EventTypingStop:        h.handleTyping,
		models.EventCallJoin:          h.handleCallJoin,
		models.EventCallLeave:         h.handleCallLeave,
		models.EventCallOffer:         h.handleCallOffer,
		models.EventCallAnswer:        h.handleCallAnswer,
		models.EventCallIceCandidate:  h.handleCallIceCandidate,
		models.EventScreenShareStart:  h.handleScreenShare,
		models.EventScreenShareStop:   h.handleScreenShare,
	}
}

func (h *Hub) handleInbound(in inbound) {
	c := in.conn
	if !h.alive(c) {
		return
	}

	if in.err != nil {
		h.metrics.EventsIn.WithLabelValues("malformed").Inc()
		h.replyError(c, in.env, in.err)
		return
	}

	env := in.env
	handler, ok := h.handlers[env.Event]
	if !ok {
		h.metrics.EventsIn.WithLabelValues("unknown").Inc()
		h.replyError(c, env, fmt.Errorf("%w: unknown event %q", ErrInvalidPayload, env.Event))
		return
	}
	h.metrics.EventsIn.WithLabelValues(string(env.Event)).Inc()

	defer func() {
		if r := recover(); r != nil {
			h.log.Error("handler panicked, closing connection",
				"event", env.Event, "conn", c.id, "panic", r, "stack", string(debug.Stack()))
			h.disconnect(c)
		}
	}()

	ack, err := handler(c, env)
	if err != nil {
		h.replyError(c, env, err)
		return
	}
	if ack != nil {
		h.ack(c, env, ack)
	}
}

func (h *Hub) ack(c *Conn, env *models.Envelope, data any) {
	if env == nil || env.Ack == "" || !h.alive(c) {
		return
	}
	h.fanout.SendFrame(c, models.EventAck, env.Ack, data)
}

// replyError turns a handler failure into an ack, an auth-error or an error
// event. Some failures are only logged when nobody waits for an ack.
func (h *Hub) replyError(c *Conn, env *models.Envelope, err error) {
	if !h.alive(c) {
		return
	}

	code := ErrorCode(err)
	message := publicMessage(err)
	var event models.EventType
	if env != nil {
		event = env.Event
	}

	if code == "server-error" {
		h.log.Error("event failed", "event", event, "conn", c.id, "error", err)
	} else {
		h.log.Debug("event rejected", "event", event, "conn", c.id, "error", err)
	}

	if errors.Is(err, ErrInvalidIdentity) {
		h.fanout.SendTo(c, models.EventAuthError, models.ErrorPayload{Event: event, Code: code, Message: message})
	}

	if env != nil && env.Ack != "" {
		h.ack(c, env, models.AckPayload{OK: false, Error: code, Message: message})
		return
	}
	if silent(err) || errors.Is(err, ErrInvalidIdentity) {
		return
	}
	h.fanout.SendTo(c, models.EventError, models.ErrorPayload{Event: event, Code: code, Message: message})
}

func okAck() models.AckPayload {
	return models.AckPayload{OK: true}
}

func requireAuth(c *Conn) error {
	if !c.authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

func (h *Hub) handleAuthenticate(c *Conn, env *models.Envelope) (any, error) {
	var p models.AuthenticatePayload
	if err := decode(env.Data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIdentity, err)
	}
	if c.verified != nil {
		if c.verified.UserID != p.UserID {
			return nil, fmt.Errorf("%w: user does not match token subject", ErrInvalidIdentity)
		}
		if p.DisplayName == "" {
			p.DisplayName = c.verified.DisplayName
		}
		if p.AvatarRef == "" {
			p.AvatarRef = c.verified.AvatarRef
		}
	}

	if c.userID != "" && c.userID != p.UserID {
		// Rooms were joined on behalf of the previous user.
		for _, roomID := range h.calls.RoomsOf(c) {
			h.leaveCall(c, roomID)
		}
		h.rooms.LeaveAll(c)
	}

	now := h.now()
	if prev := h.registry.Bind(c, models.PresenceRecord{
		UserID:          p.UserID,
		DisplayName:     p.DisplayName,
		AvatarRef:       p.AvatarRef,
		LastHeartbeatAt: now,
	}); prev != nil {
		h.goOffline(*prev)
	}

	h.fanout.SendTo(c, models.EventOnlineUsers, h.registry.Snapshot())
	h.fanout.Broadcast(models.EventUserOnline, models.PresenceChange{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		AvatarRef:   p.AvatarRef,
	}, c)
	h.persistPresence(p.UserID, true, now)

	h.log.Info("user authenticated", "conn", c.id, "user", p.UserID)
	return okAck(), nil
}

func (h *Hub) handleHeartbeat(c *Conn, _ *models.Envelope) (any, error) {
	h.touch(c)
	return models.AckPayload{OK: true, Time: serverTime(h.now())}, nil
}

func (h *Hub) handleJoinConversation(c *Conn, env *models.Envelope) (any, error) {
	if err := requireAuth(c); err != nil {
		return nil, err
	}
	conversationID, err := decodeConversationID(env.Data)
	if err != nil {
		return nil, err
	}

	room := ConversationRoom(conversationID)
	if h.rooms.IsMember(c, room) {
		return models.AckPayload{OK: true, Room: room}, nil
	}

	userID := c.userID
	epoch := c.beginJoin(room)
	h.goOrdered(c, func(ctx context.Context) func() {
		err := h.convs.CheckAccess(ctx, conversationID, userID)
		return func() {
			if !h.alive(c) {
				return
			}
			stands := c.finishJoin(room, epoch)
			if c.userID != userID {
				return
			}
			if !stands {
				h.replyError(c, env, fmt.Errorf("%w: %s", ErrJoinCancelled, room))
				return
			}
			if err != nil {
				h.replyError(c, env, storeError(err))
				return
			}
			h.rooms.Join(c, room)
			h.ack(c, env, models.AckPayload{OK: true, Room: room})
		}
	})
	return nil, nil
}

func (h *Hub) handleLeaveConversation(c *Conn, env *models.Envelope) (any, error) {
	conversationID, err := decodeConversationID(env.Data)
	if err != nil {
		return nil, err
	}
	room := ConversationRoom(conversationID)
	c.cancelJoins(room)
	h.rooms.Leave(c, room)
	return models.AckPayload{OK: true, Room: room}, nil
}

func (h *Hub) handleMessageSend(c *Conn, env *models.Envelope) (any, error) {
	if err := requireAuth(c); err != nil {
		return nil, err
	}

	msg, err := parseMessage(env.Data)
	if err != nil {
		return nil, err
	}
	if msg.SenderID != "" && msg.SenderID != c.userID {
		return nil, fmt.Errorf("%w: sender does not match connection user", ErrAccessDenied)
	}
	h.touch(c)

	userID := c.userID
	h.goOrdered(c, func(ctx context.Context) func() {
		participants, err := h.convs.Participants(ctx, msg.ConversationID, userID)
		if err == nil {
			h.recordMessage(msg)
		}
		return func() {
			if err != nil {
				h.replyError(c, env, storeError(err))
				return
			}
			h.relayMessage(c, msg, participants)
			h.ack(c, env, okAck())
		}
	})
	return nil, nil
}

// recordMessage keeps a relayed message in stores that do not get messages
// from anywhere else, so reactions to it resolve.
func (h *Hub) recordMessage(msg models.Message) {
	if msg.ID == "" {
		return
	}
	if recorder, ok := h.store.(database.MessageRecorder); ok {
		recorder.AddMessage(msg)
	}
}

// relayMessage runs on the loop once the sender is confirmed as a
// participant. The sender may already be gone; the room still gets it.
func (h *Hub) relayMessage(sender *Conn, msg models.Message, participants []string) {
	h.fanout.PublishToRoom(ConversationRoom(msg.ConversationID), models.EventMessageNew, msg.Raw, sender)

	updatedAt := msg.CreatedAt
	if updatedAt.IsZero() {
		updatedAt = h.now().UTC()
	}
	summary := models.ConversationSummary{
		ID:          msg.ConversationID,
		LastMessage: msg.Raw,
		UpdatedAt:   updatedAt,
	}
	for _, userID := range participants {
		h.fanout.PublishToUser(userID, models.EventConversationUpdated, summary)
	}
}

func (h *Hub) handleReactionToggle(c *Conn, env *models.Envelope) (any, error) {
	if err := requireAuth(c); err != nil {
		return nil, err
	}
	var p models.ReactionTogglePayload
	if err := decode(env.Data, &p); err != nil {
		return nil, err
	}
	h.touch(c)

	toggle := ReactionToggle{
		ConversationID: p.ConversationID,
		MessageID:      p.MessageID,
		UserID:         c.userID,
		Emoji:          p.Emoji,
	}
	h.goOrdered(c, func(ctx context.Context) func() {
		reactions, added, err := h.reactions.Toggle(ctx, toggle)
		return func() {
			if err != nil {
				h.metrics.ReactionToggles.WithLabelValues(ErrorCode(err)).Inc()
				h.replyError(c, env, err)
				return
			}
			result := "removed"
			if added {
				result = "added"
			}
			h.metrics.ReactionToggles.WithLabelValues(result).Inc()

			h.fanout.PublishToRoom(ConversationRoom(toggle.ConversationID), models.EventReactionUpdate, models.ReactionUpdate{
				MessageID: toggle.MessageID,
				Reactions: reactions,
			}, nil)
			h.ack(c, env, models.ReactionAck{OK: true, Reactions: reactions})
		}
	})
	return nil, nil
}

func serverTime(t time.Time) *time.Time {
	t = t.UTC()
	return &t
}
