package hub

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"chat-hub/internal/auth"
	"chat-hub/internal/config"
	"chat-hub/internal/database"
	"chat-hub/internal/models"
	"chat-hub/internal/services"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

type inbound struct {
	conn *Conn
	env  *models.Envelope
	err  error
}

// task is a function run on the loop. A panic in fn disconnects conn when
// it is set.
type task struct {
	conn *Conn
	fn   func()
}

// Options carries the hub's collaborators. Zero values get defaults.
type Options struct {
	Store        database.Store
	StoreTimeout time.Duration
	Metrics      *Metrics
	Logger       *slog.Logger
}

// Hub is the single owner of connections, rooms, call sessions and presence.
// Everything that touches them runs on the Run goroutine; other goroutines
// talk to it through channels.
type Hub struct {
	cfg          config.HubConfig
	storeTimeout time.Duration
	store        database.Store
	convs        *services.ConversationService
	reactions    *ReactionCoordinator
	metrics      *Metrics
	log          *slog.Logger
	now          func() time.Time
	started      time.Time

	registry *Registry
	rooms    *Rooms
	calls    *CallManager
	fanout   *Dispatcher
	handlers map[models.EventType]handlerFunc

	register   chan *Conn
	unregister chan *Conn
	inbound    chan inbound
	tasks      chan task

	quit     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	draining atomic.Bool

	async sync.WaitGroup
	pumps sync.WaitGroup
}

func NewHub(cfg config.HubConfig, opts Options) *Hub {
	if opts.Store == nil {
		opts.Store = database.NewMemoryStore(false)
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = 5 * time.Second
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(prometheus.NewRegistry())
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	convs := services.NewConversationService(opts.Store)
	h := &Hub{
		cfg:          cfg,
		storeTimeout: opts.StoreTimeout,
		store:        opts.Store,
		convs:        convs,
		reactions:    NewReactionCoordinator(opts.Store, convs),
		metrics:      opts.Metrics,
		log:          opts.Logger.With("component", "hub"),
		now:          time.Now,
		started:      time.Now(),
		registry:     NewRegistry(),
		rooms:        NewRooms(),
		calls:        NewCallManager(cfg.MaxCallParticipants),
		register:     make(chan *Conn),
		unregister:   make(chan *Conn),
		inbound:      make(chan inbound),
		tasks:        make(chan task),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	h.fanout = &Dispatcher{
		registry: h.registry,
		rooms:    h.rooms,
		metrics:  h.metrics,
		log:      h.log,
		drop:     h.disconnect,
	}
	h.handlers = h.routes()
	return h
}

// Run owns the hub state until ctx is cancelled or Shutdown stops it.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	ticker := time.NewTicker(h.cfg.SweepInterval)
	defer ticker.Stop()

	h.log.Info("hub started", "sweep_interval", h.cfg.SweepInterval, "presence_ttl", h.cfg.PresenceTTL)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case <-h.quit:
			h.closeAll()
			return

		case c := <-h.register:
			h.handleRegister(c)

		case c := <-h.unregister:
			h.disconnect(c)

		case in := <-h.inbound:
			h.handleInbound(in)

		case t := <-h.tasks:
			h.runTask(t)

		case <-ticker.C:
			h.sweep(h.now())
		}
		h.observe()
	}
}

// Serve registers a freshly upgraded socket and starts its pumps.
func (h *Hub) Serve(ws *websocket.Conn, remoteAddr string, verified *auth.Identity) (*Conn, error) {
	c := newConn(h, ws, remoteAddr, verified)

	h.pumps.Add(2)
	if err := h.Register(c); err != nil {
		h.pumps.Add(-2)
		return nil, err
	}
	go func() {
		defer h.pumps.Done()
		c.writePump()
	}()
	go func() {
		defer h.pumps.Done()
		c.readPump()
	}()
	return c, nil
}

// Register adds c to the registry unauthenticated.
func (h *Hub) Register(c *Conn) error {
	if h.draining.Load() {
		return ErrDraining
	}
	select {
	case h.register <- c:
		return nil
	case <-h.done:
		return ErrDraining
	}
}

// Draining reports whether Shutdown has started.
func (h *Hub) Draining() bool {
	return h.draining.Load()
}

// StartedAt is when the hub was created.
func (h *Hub) StartedAt() time.Time {
	return h.started
}

// Stats is a point-in-time view of the hub, read on the loop.
type Stats struct {
	Connections              int
	AuthenticatedConnections int
	OnlineUsers              int
	Rooms                    int
	CallSessions             int
	Draining                 bool
}

func (h *Hub) Stats() Stats {
	var s Stats
	h.exec(func() {
		s = Stats{
			Connections:              h.registry.Len(),
			AuthenticatedConnections: h.registry.Authenticated(),
			OnlineUsers:              h.registry.OnlineUsers(),
			Rooms:                    h.rooms.Len(),
			CallSessions:             h.calls.Len(),
		}
	})
	s.Draining = h.draining.Load()
	return s
}

func (h *Hub) handleRegister(c *Conn) {
	if h.draining.Load() {
		h.closeConn(c)
		return
	}
	h.registry.Add(c)
	h.log.Debug("connection registered", "conn", c.id, "remote", c.remoteAddr)
}

// disconnect removes c from every table and closes its queue. Safe to call
// for connections already gone.
func (h *Hub) disconnect(c *Conn) {
	if !h.registry.Has(c) {
		return
	}

	for _, roomID := range h.calls.RoomsOf(c) {
		h.leaveCall(c, roomID)
	}
	h.rooms.LeaveAll(c)

	userID := c.userID
	if rec := h.registry.Remove(c); rec != nil {
		h.goOffline(*rec)
	}
	h.closeConn(c)
	h.log.Debug("connection removed", "conn", c.id, "user", userID)
}

func (h *Hub) goOffline(rec models.PresenceRecord) {
	if !h.draining.Load() {
		h.fanout.Broadcast(models.EventUserOffline, models.PresenceChange{
			UserID:      rec.UserID,
			DisplayName: rec.DisplayName,
			AvatarRef:   rec.AvatarRef,
		}, nil)
	}
	h.persistPresence(rec.UserID, false, h.now())
}

func (h *Hub) closeConn(c *Conn) {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (h *Hub) closeAll() {
	for _, c := range h.registry.All() {
		h.registry.Remove(c)
		h.rooms.LeaveAll(c)
		h.closeConn(c)
	}
}

// alive reports whether c is still registered. Continuations check it before
// touching a connection.
func (h *Hub) alive(c *Conn) bool {
	return h.registry.Has(c) && !c.closed
}

func (h *Hub) touch(c *Conn) {
	if h.alive(c) && c.authenticated() {
		h.registry.Touch(c.userID, h.now())
	}
}

func (h *Hub) persistPresence(userID string, online bool, at time.Time) {
	h.goAsync(func(ctx context.Context) {
		if err := h.store.SetPresence(ctx, userID, online, at); err != nil {
			h.log.Error("failed to persist presence", "user", userID, "online", online, "error", err)
		}
	})
}

// goAsync runs store work off the loop with the store timeout.
func (h *Hub) goAsync(work func(ctx context.Context)) {
	h.async.Add(1)
	go func() {
		defer h.async.Done()
		ctx, cancel := context.WithTimeout(context.Background(), h.storeTimeout)
		defer cancel()
		work(ctx)
	}()
}

// goOrdered runs store work for c off the loop and then the continuation it
// returns on the loop. Jobs for one connection run strictly in submission
// order: each waits until the previous job's continuation has finished.
// Must be called on the loop.
func (h *Hub) goOrdered(c *Conn, work func(ctx context.Context) func()) {
	prev := c.tail
	finished := make(chan struct{})
	c.tail = finished

	h.async.Add(1)
	go func() {
		defer h.async.Done()
		defer close(finished)

		if prev != nil {
			select {
			case <-prev:
			case <-h.done:
				return
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), h.storeTimeout)
		next := work(ctx)
		cancel()
		if next != nil {
			h.execFor(c, next)
		}
	}()
}

// post hands fn to the loop. It reports false once the loop has stopped.
func (h *Hub) post(fn func()) bool {
	return h.postFor(nil, fn)
}

// postFor is post on behalf of c.
func (h *Hub) postFor(c *Conn, fn func()) bool {
	select {
	case h.tasks <- task{conn: c, fn: fn}:
		return true
	case <-h.done:
		return false
	}
}

// exec runs fn on the loop and waits for it.
func (h *Hub) exec(fn func()) bool {
	return h.execFor(nil, fn)
}

func (h *Hub) execFor(c *Conn, fn func()) bool {
	finished := make(chan struct{})
	if !h.postFor(c, func() {
		defer close(finished)
		fn()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) submit(in inbound) bool {
	select {
	case h.inbound <- in:
		return true
	case <-h.done:
		return false
	}
}

// leave is called by a read pump on its way out.
func (h *Hub) leave(c *Conn) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) runTask(t task) {
	defer func() {
		if r := recover(); r != nil {
			if t.conn == nil {
				h.log.Error("task panicked", "panic", r, "stack", string(debug.Stack()))
				return
			}
			h.log.Error("task panicked, closing connection",
				"conn", t.conn.id, "panic", r, "stack", string(debug.Stack()))
			h.disconnect(t.conn)
		}
	}()
	t.fn()
}

func (h *Hub) observe() {
	h.metrics.Connections.Set(float64(h.registry.Len()))
	h.metrics.OnlineUsers.Set(float64(h.registry.OnlineUsers()))
	h.metrics.CallSessions.Set(float64(h.calls.Len()))
}
