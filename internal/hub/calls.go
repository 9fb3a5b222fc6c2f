package hub

import (
	"fmt"

	"chat-hub/internal/models"
)

func (h *Hub) handleCallJoin(c *Conn, env *models.Envelope) (any, error) {
	if err := requireAuth(c); err != nil {
		return nil, err
	}
	var p models.CallRoomPayload
	if err := decode(env.Data, &p); err != nil {
		return nil, err
	}

	session, ready, err := h.calls.Join(p.RoomID, c)
	if err != nil {
		h.fanout.SendTo(c, models.EventCallError, models.CallError{RoomID: p.RoomID, Error: ErrorCode(err)})
		h.log.Info("call join rejected", "room", p.RoomID, "conn", c.id, "error", err)
		return nil, err
	}
	h.rooms.Join(c, CallRoom(p.RoomID))

	if ready {
		participants := session.Participants()
		peers := session.peers()
		for i, participant := range participants {
			h.fanout.SendTo(participant, models.EventCallReady, models.CallReady{
				RoomID:    p.RoomID,
				Peers:     peers,
				Initiator: i == 0,
			})
		}
		h.log.Info("call ready", "room", p.RoomID, "participants", len(participants))
	}
	return models.AckPayload{OK: true, Room: p.RoomID}, nil
}

func (h *Hub) handleCallLeave(c *Conn, env *models.Envelope) (any, error) {
	var p models.CallRoomPayload
	if err := decode(env.Data, &p); err != nil {
		return nil, err
	}
	h.leaveCall(c, p.RoomID)
	return models.AckPayload{OK: true, Room: p.RoomID}, nil
}

// leaveCall removes c from a call room and tells whoever remains.
func (h *Hub) leaveCall(c *Conn, roomID string) {
	h.rooms.Leave(c, CallRoom(roomID))
	session, was := h.calls.Leave(roomID, c)
	if !was || session == nil {
		return
	}

	h.fanout.PublishToRoom(CallRoom(roomID), models.EventCallPeerLeft, models.CallPeerLeft{
		RoomID:       roomID,
		ConnectionID: c.id,
		UserID:       c.userID,
	}, c)
}

func (h *Hub) handleCallOffer(c *Conn, env *models.Envelope) (any, error) {
	var p models.CallSignalPayload
	if err := decode(env.Data, &p); err != nil {
		return nil, err
	}
	if len(p.SDP) == 0 {
		return nil, fmt.Errorf("%w: missing sdp", ErrInvalidPayload)
	}

	session, peers, err := h.calls.Peers(p.RoomID, c)
	if err != nil {
		h.log.Debug("offer dropped", "room", p.RoomID, "conn", c.id, "error", err)
		return nil, err
	}

	session.Apply(SignalOffer)
	h.relaySignal(c, peers, models.EventCallOffer, models.CallSignal{
		RoomID: p.RoomID,
		From:   c.id,
		UserID: c.userID,
		SDP:    p.SDP,
	})
	return okAck(), nil
}

func (h *Hub) handleCallAnswer(c *Conn, env *models.Envelope) (any, error) {
	var p models.CallSignalPayload
	if err := decode(env.Data, &p); err != nil {
		return nil, err
	}
	if len(p.SDP) == 0 {
		return nil, fmt.Errorf("%w: missing sdp", ErrInvalidPayload)
	}

	session, peers, err := h.calls.Peers(p.RoomID, c)
	if err != nil {
		h.log.Debug("answer dropped", "room", p.RoomID, "conn", c.id, "error", err)
		return nil, err
	}

	// An answer outside offer-sent is still relayed; it just does not move
	// the state.
	answered := session.Apply(SignalAnswer)
	delivered := h.relaySignal(c, peers, models.EventCallAnswer, models.CallSignal{
		RoomID: p.RoomID,
		From:   c.id,
		UserID: c.userID,
		SDP:    p.SDP,
	})
	if answered && delivered {
		session.Apply(SignalAnswerDelivered)
		h.log.Info("call connected", "room", p.RoomID)
	}
	return okAck(), nil
}

func (h *Hub) handleCallIceCandidate(c *Conn, env *models.Envelope) (any, error) {
	var p models.CallSignalPayload
	if err := decode(env.Data, &p); err != nil {
		return nil, err
	}

	_, peers, err := h.calls.Peers(p.RoomID, c)
	if err != nil {
		return nil, err
	}
	h.relaySignal(c, peers, models.EventCallIceCandidate, models.CallSignal{
		RoomID:    p.RoomID,
		From:      c.id,
		UserID:    c.userID,
		Candidate: p.Candidate,
	})
	return nil, nil
}

func (h *Hub) handleScreenShare(c *Conn, env *models.Envelope) (any, error) {
	var p models.CallRoomPayload
	if err := decode(env.Data, &p); err != nil {
		return nil, err
	}

	session, peers, err := h.calls.Peers(p.RoomID, c)
	if err != nil {
		return nil, err
	}

	sig := SignalScreenShareOn
	if env.Event == models.EventScreenShareStop {
		sig = SignalScreenShareOff
	}
	if session.State == StateConnected && !session.mayShare(c) {
		return nil, fmt.Errorf("%w: screen is shared by another participant", ErrAccessDenied)
	}
	if !session.Apply(sig) {
		return nil, ErrCallNotConnected
	}
	if sig == SignalScreenShareOn {
		session.ScreenSharer = c.id
	}

	h.relaySignal(c, peers, env.Event, models.CallSignal{
		RoomID: p.RoomID,
		From:   c.id,
		UserID: c.userID,
	})
	return okAck(), nil
}

// relaySignal forwards a signal to each peer and reports whether every peer
// got it.
func (h *Hub) relaySignal(from *Conn, peers []*Conn, event models.EventType, signal models.CallSignal) bool {
	delivered := true
	for _, peer := range peers {
		if peer == from {
			continue
		}
		if !h.fanout.SendTo(peer, event, signal) {
			delivered = false
		}
	}
	return delivered
}
