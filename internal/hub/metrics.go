package hub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the hub's Prometheus collectors.
//
// Gauges are refreshed by the hub loop after every step, counters are bumped
// where the event happens.
type Metrics struct {
	// Connections is the number of registered connections.
	Connections prometheus.Gauge

	// OnlineUsers is the number of live presence records.
	OnlineUsers prometheus.Gauge

	// CallSessions is the number of call rooms with at least one participant.
	CallSessions prometheus.Gauge

	// EventsIn counts inbound frames.
	// Labels: event (known event names, "unknown" or "malformed")
	EventsIn *prometheus.CounterVec

	// EventsOut counts frames enqueued to connections.
	// Labels: event
	EventsOut *prometheus.CounterVec

	// DroppedDeliveries counts frames that could not be enqueued because the
	// connection's buffer was full.
	DroppedDeliveries prometheus.Counter

	// ReactionToggles counts toggle outcomes.
	// Labels: result (added|removed|error code)
	ReactionToggles *prometheus.CounterVec

	// PresenceEvictions counts records removed by the heartbeat sweep.
	PresenceEvictions prometheus.Counter
}

// NewMetrics registers the hub collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Connections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "chathub",
			Name:      "connections",
			Help:      "Registered connections",
		}),
		OnlineUsers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "chathub",
			Name:      "online_users",
			Help:      "Users with a live presence record",
		}),
		CallSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "chathub",
			Name:      "call_sessions",
			Help:      "Active call rooms",
		}),
		EventsIn: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chathub",
			Name:      "events_in_total",
			Help:      "Inbound frames by event",
		}, []string{"event"}),
		EventsOut: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chathub",
			Name:      "events_out_total",
			Help:      "Outbound frames by event",
		}, []string{"event"}),
		DroppedDeliveries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "chathub",
			Name:      "dropped_deliveries_total",
			Help:      "Frames dropped because a connection's buffer was full",
		}),
		ReactionToggles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chathub",
			Name:      "reaction_toggles_total",
			Help:      "Reaction toggles by result",
		}, []string{"result"}),
		PresenceEvictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "chathub",
			Name:      "presence_evictions_total",
			Help:      "Presence records evicted by the heartbeat sweep",
		}),
	}
}
