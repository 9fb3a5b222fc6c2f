package hub

import (
	"slices"

	"chat-hub/internal/models"

	"github.com/samber/lo"
)

type NegotiationState string

const (
	StateIdle            NegotiationState = "idle"
	StateLocalMediaReady NegotiationState = "local-media-ready"
	StateOfferSent       NegotiationState = "offer-sent"
	StateAnswerReceived  NegotiationState = "answer-received"
	StateConnected       NegotiationState = "connected"
)

type Signal string

const (
	SignalPeerReady       Signal = "peer-ready"
	SignalOffer           Signal = "offer"
	SignalAnswer          Signal = "answer"
	SignalAnswerDelivered Signal = "answer-delivered"
	SignalPeerLeft        Signal = "peer-left"
	SignalScreenShareOn   Signal = "screen-share-on"
	SignalScreenShareOff  Signal = "screen-share-off"
)

// transitions lists, per signal, the states it may fire from and where it
// lands. peer-left is handled separately because it fires from anywhere.
var transitions = map[Signal]struct {
	from []NegotiationState
	to   NegotiationState
}{
	SignalPeerReady:       {[]NegotiationState{StateIdle}, StateLocalMediaReady},
	SignalOffer:           {[]NegotiationState{StateLocalMediaReady, StateOfferSent, StateAnswerReceived, StateConnected}, StateOfferSent},
	SignalAnswer:          {[]NegotiationState{StateOfferSent}, StateAnswerReceived},
	SignalAnswerDelivered: {[]NegotiationState{StateAnswerReceived}, StateConnected},
	SignalScreenShareOn:   {[]NegotiationState{StateConnected}, StateConnected},
	SignalScreenShareOff:  {[]NegotiationState{StateConnected}, StateConnected},
}

// CallSession is one call room. participants keeps join order; the first
// joiner is the suggested initiator.
type CallSession struct {
	RoomID            string
	State             NegotiationState
	ScreenShareActive bool
	ScreenSharer      string
	participants      []*Conn
}

// Apply runs one signal through the state machine and reports whether it
// was accepted. Rejected signals leave the session untouched.
func (s *CallSession) Apply(sig Signal) bool {
	if sig == SignalPeerLeft {
		s.State = StateIdle
		s.ScreenShareActive = false
		s.ScreenSharer = ""
		return true
	}

	t, ok := transitions[sig]
	if !ok || !slices.Contains(t.from, s.State) {
		return false
	}
	s.State = t.to

	switch sig {
	case SignalScreenShareOn:
		s.ScreenShareActive = true
	case SignalScreenShareOff:
		s.ScreenShareActive = false
		s.ScreenSharer = ""
	}
	return true
}

// mayShare reports whether c may start or stop screen sharing: nobody is
// sharing, or c is the one sharing.
func (s *CallSession) mayShare(c *Conn) bool {
	return !s.ScreenShareActive || s.ScreenSharer == c.id
}

func (s *CallSession) Participants() []*Conn {
	return slices.Clone(s.participants)
}

func (s *CallSession) has(c *Conn) bool {
	return slices.Contains(s.participants, c)
}

// others returns every participant but c.
func (s *CallSession) others(c *Conn) []*Conn {
	return lo.Without(s.participants, c)
}

func (s *CallSession) peers() []models.CallPeer {
	return lo.Map(s.participants, func(p *Conn, _ int) models.CallPeer {
		return models.CallPeer{ConnectionID: p.id, UserID: p.userID}
	})
}

// CallManager owns every call session. It is owned by the hub loop.
type CallManager struct {
	sessions        map[string]*CallSession
	maxParticipants int
}

func NewCallManager(maxParticipants int) *CallManager {
	if maxParticipants < 2 {
		maxParticipants = 2
	}
	return &CallManager{
		sessions:        make(map[string]*CallSession),
		maxParticipants: maxParticipants,
	}
}

// Join adds c to roomID, creating the session on first join. Joining twice
// is a no-op. When the join brings the session to two participants it moves
// to local-media-ready and ready is true.
func (m *CallManager) Join(roomID string, c *Conn) (s *CallSession, ready bool, err error) {
	s, ok := m.sessions[roomID]
	if !ok {
		s = &CallSession{RoomID: roomID, State: StateIdle}
		m.sessions[roomID] = s
	}
	if s.has(c) {
		return s, false, nil
	}
	if len(s.participants) >= m.maxParticipants {
		return s, false, ErrCallFull
	}

	s.participants = append(s.participants, c)
	if len(s.participants) >= 2 {
		ready = s.Apply(SignalPeerReady)
	}
	return s, ready, nil
}

// Leave removes c from roomID. It returns the session when participants
// remain (already reset to idle) and whether c was in it. Empty sessions are
// destroyed.
func (m *CallManager) Leave(roomID string, c *Conn) (*CallSession, bool) {
	s, ok := m.sessions[roomID]
	if !ok || !s.has(c) {
		return nil, false
	}

	s.participants = lo.Without(s.participants, c)
	if len(s.participants) == 0 {
		delete(m.sessions, roomID)
		return nil, true
	}
	s.Apply(SignalPeerLeft)
	return s, true
}

// RoomsOf lists the call rooms c participates in.
func (m *CallManager) RoomsOf(c *Conn) []string {
	var rooms []string
	for id, s := range m.sessions {
		if s.has(c) {
			rooms = append(rooms, id)
		}
	}
	slices.Sort(rooms)
	return rooms
}

// Peers returns c's session in roomID and the other participants.
func (m *CallManager) Peers(roomID string, c *Conn) (*CallSession, []*Conn, error) {
	s, ok := m.sessions[roomID]
	if !ok || !s.has(c) {
		return nil, nil, ErrNotInCall
	}
	others := s.others(c)
	if len(others) == 0 {
		return s, nil, ErrNoPeer
	}
	return s, others, nil
}

func (m *CallManager) Get(roomID string) (*CallSession, bool) {
	s, ok := m.sessions[roomID]
	return s, ok
}

func (m *CallManager) Len() int { return len(m.sessions) }
