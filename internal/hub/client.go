package hub

import (
	"time"

	"chat-hub/internal/auth"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Conn is one live socket. Fields below the divider are owned by the hub
// loop and must not be touched from the pumps.
type Conn struct {
	id         string
	remoteAddr string
	hub        *Hub
	ws         *websocket.Conn
	send       chan []byte
	verified   *auth.Identity

	userID      string
	displayName string
	avatarRef   string
	closed      bool

	// tail is closed when the last ordered job queued for c has finished.
	tail    chan struct{}
	pending map[string]*pendingJoin
}

// pendingJoin tracks joins for one room still waiting on their access
// check. A leave bumps epoch, which cancels every join issued before it.
type pendingJoin struct {
	waiting int
	epoch   uint64
}

func newConn(h *Hub, ws *websocket.Conn, remoteAddr string, verified *auth.Identity) *Conn {
	return &Conn{
		id:         uuid.NewString(),
		remoteAddr: remoteAddr,
		hub:        h,
		ws:         ws,
		send:       make(chan []byte, h.cfg.SendBuffer),
		verified:   verified,
	}
}

func (c *Conn) ID() string { return c.id }

func (c *Conn) authenticated() bool { return c.userID != "" }

// beginJoin records a join for room and returns the epoch it was issued in.
func (c *Conn) beginJoin(room string) uint64 {
	if c.pending == nil {
		c.pending = make(map[string]*pendingJoin)
	}
	p, ok := c.pending[room]
	if !ok {
		p = &pendingJoin{}
		c.pending[room] = p
	}
	p.waiting++
	return p.epoch
}

// finishJoin settles a join begun in epoch and reports whether it still
// stands, i.e. no leave for room arrived in the meantime.
func (c *Conn) finishJoin(room string, epoch uint64) bool {
	p, ok := c.pending[room]
	if !ok {
		return false
	}
	p.waiting--
	if p.waiting <= 0 {
		delete(c.pending, room)
	}
	return p.epoch == epoch
}

// cancelJoins cancels the joins for room still waiting on their check.
func (c *Conn) cancelJoins(room string) bool {
	p, ok := c.pending[room]
	if !ok {
		return false
	}
	p.epoch++
	return true
}

// readPump decodes frames and hands them to the hub loop. It owns reads on
// the socket.
func (c *Conn) readPump() {
	defer func() {
		c.hub.leave(c)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(c.hub.cfg.MaxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		c.hub.postFor(c, func() { c.hub.touch(c) })
		return nil
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("websocket read error", "conn", c.id, "error", err)
			}
			return
		}

		env, err := parseEnvelope(raw)
		if !c.hub.submit(inbound{conn: c, env: env, err: err}) {
			return
		}
	}
}

// writePump drains the send queue. The hub closes the queue to close the
// socket.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.hub.log.Warn("websocket write error", "conn", c.id, "error", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
