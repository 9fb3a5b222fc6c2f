package models

import (
	"encoding/json"
	"time"
)

type EventType string

// Client to hub.
const (
	EventAuthenticate      EventType = "authenticate"
	EventHeartbeat         EventType = "heartbeat"
	EventJoinConversation  EventType = "join-conversation"
	EventLeaveConversation EventType = "leave-conversation"
	EventMessageSend       EventType = "message:send"
	EventReactionToggle    EventType = "reaction:toggle"
	EventTypingStart       EventType = "typing:start"
	EventTypingStop        EventType = "typing:stop"
	EventCallJoin          EventType = "webrtc:join"
	EventCallLeave         EventType = "webrtc:leave"
	EventCallOffer         EventType = "webrtc:offer"
	EventCallAnswer        EventType = "webrtc:answer"
	EventCallIceCandidate  EventType = "webrtc:ice-candidate"
	EventScreenShareStart  EventType = "webrtc:screen-share-start"
	EventScreenShareStop   EventType = "webrtc:screen-share-stop"
)

// Hub to client.
const (
	EventAck                 EventType = "ack"
	EventError               EventType = "error"
	EventAuthError           EventType = "auth-error"
	EventOnlineUsers         EventType = "online-users"
	EventUserOnline          EventType = "user-online"
	EventUserOffline         EventType = "user-offline"
	EventMessageNew          EventType = "message:new"
	EventConversationUpdated EventType = "conversation:updated"
	EventReactionUpdate      EventType = "reaction:update"
	EventCallReady           EventType = "webrtc:ready"
	EventCallPeerLeft        EventType = "webrtc:peer-left"
	EventCallError           EventType = "webrtc:error"
	EventServerShutdown      EventType = "server-shutdown"
)

// Envelope is the frame exchanged in both directions over the socket.
type Envelope struct {
	Event EventType       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
	Ack   string          `json:"ack,omitempty"`
}

type AckPayload struct {
	OK      bool       `json:"ok"`
	Error   string     `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
	Room    string     `json:"roomId,omitempty"`
	Time    *time.Time `json:"serverTime,omitempty"`
}

// ReactionAck always carries the list, empty when the last reaction went away.
type ReactionAck struct {
	OK        bool       `json:"ok"`
	Reactions []Reaction `json:"reactions"`
}

type ErrorPayload struct {
	Event   EventType `json:"event,omitempty"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

type AuthenticatePayload struct {
	UserID      string `json:"userId" validate:"required,identity"`
	DisplayName string `json:"displayName" validate:"max=256"`
	AvatarRef   string `json:"avatarRef" validate:"max=2048"`
}

type OnlineUser struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName,omitempty"`
	AvatarRef   string `json:"avatarRef,omitempty"`
	IsOnline    bool   `json:"isOnline"`
}

type PresenceChange struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName,omitempty"`
	AvatarRef   string `json:"avatarRef,omitempty"`
}

type ConversationRef struct {
	ConversationID string `json:"conversationId" validate:"required,max=128"`
}

type ReactionTogglePayload struct {
	ConversationID string `json:"conversationId" validate:"required,max=128"`
	MessageID      string `json:"messageId" validate:"required,max=128"`
	Emoji          string `json:"emoji" validate:"required,max=64"`
}

type ReactionUpdate struct {
	MessageID string     `json:"messageId"`
	Reactions []Reaction `json:"reactions"`
}

type TypingPayload struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId,omitempty"`
	UserName       string `json:"userName,omitempty"`
}

type CallRoomPayload struct {
	RoomID string `json:"roomId" validate:"required,max=128"`
}

// CallSignalPayload carries sdp or candidate untouched.
type CallSignalPayload struct {
	RoomID    string          `json:"roomId" validate:"required,max=128"`
	SDP       json.RawMessage `json:"sdp,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

type CallSignal struct {
	RoomID    string          `json:"roomId"`
	From      string          `json:"from"`
	UserID    string          `json:"userId,omitempty"`
	SDP       json.RawMessage `json:"sdp,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

type CallPeer struct {
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId,omitempty"`
}

type CallReady struct {
	RoomID    string     `json:"roomId"`
	Peers     []CallPeer `json:"peers"`
	Initiator bool       `json:"initiator"`
}

type CallPeerLeft struct {
	RoomID       string `json:"roomId"`
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId,omitempty"`
}

type CallError struct {
	RoomID string `json:"roomId"`
	Error  string `json:"error"`
}

type ShutdownNotice struct {
	Message string `json:"message"`
}
