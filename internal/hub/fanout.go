package hub

import (
	"encoding/json"
	"log/slog"

	"chat-hub/internal/models"
)

// Dispatcher delivers events to rooms, users or single connections. Frames
// are encoded once per dispatch and enqueued without blocking; a connection
// whose queue is full is handed to drop after the dispatch finishes.
type Dispatcher struct {
	registry *Registry
	rooms    *Rooms
	metrics  *Metrics
	log      *slog.Logger
	drop     func(c *Conn)
}

func encodeFrame(event models.EventType, ack string, payload any) ([]byte, error) {
	env := models.Envelope{Event: event, Ack: ack}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Data = data
	}
	return json.Marshal(env)
}

// PublishToRoom sends to every member of room except the given connection.
func (d *Dispatcher) PublishToRoom(room string, event models.EventType, payload any, except *Conn) {
	d.deliver(d.rooms.Members(room), event, payload, except)
}

// PublishToUser sends to every connection of userID.
func (d *Dispatcher) PublishToUser(userID string, event models.EventType, payload any) {
	d.deliver(d.registry.ConnsOf(userID), event, payload, nil)
}

// Broadcast sends to every registered connection except the given one.
func (d *Dispatcher) Broadcast(event models.EventType, payload any, except *Conn) {
	d.deliver(d.registry.All(), event, payload, except)
}

// SendTo sends to one connection and reports whether it was enqueued.
func (d *Dispatcher) SendTo(c *Conn, event models.EventType, payload any) bool {
	return d.SendFrame(c, event, "", payload)
}

// SendFrame is SendTo with an ack id, used for acknowledgements.
func (d *Dispatcher) SendFrame(c *Conn, event models.EventType, ack string, payload any) bool {
	frame, err := encodeFrame(event, ack, payload)
	if err != nil {
		d.log.Error("failed to encode frame", "event", event, "error", err)
		return false
	}
	if d.enqueue(c, event, frame) {
		return true
	}
	d.drop(c)
	return false
}

func (d *Dispatcher) deliver(targets []*Conn, event models.EventType, payload any, except *Conn) {
	if len(targets) == 0 {
		return
	}

	frame, err := encodeFrame(event, "", payload)
	if err != nil {
		d.log.Error("failed to encode frame", "event", event, "error", err)
		return
	}

	var slow []*Conn
	for _, c := range targets {
		if c == except {
			continue
		}
		if !d.enqueue(c, event, frame) {
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		d.drop(c)
	}
}

func (d *Dispatcher) enqueue(c *Conn, event models.EventType, frame []byte) bool {
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		d.metrics.EventsOut.WithLabelValues(string(event)).Inc()
		return true
	default:
		d.metrics.DroppedDeliveries.Inc()
		d.log.Warn("send buffer full, dropping connection", "conn", c.id, "event", event)
		return false
	}
}
