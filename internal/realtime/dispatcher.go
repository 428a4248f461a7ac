package realtime

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/burnoutberni/constellate-realtime/internal/metrics"
)

const defaultHeartbeatInterval = 25 * time.Second

// Dispatcher is the public fan-out entry point used by business logic after a
// state change has been committed. It never fails and never blocks beyond the
// bounded per-connection write: a broken stream is torn down and the fan-out
// continues with the rest.
type Dispatcher struct {
	registry          *Registry
	clock             clockwork.Clock
	heartbeatInterval time.Duration
}

// NewDispatcher creates a dispatcher over the given registry.
// heartbeatInterval must be shorter than any intermediary idle timeout;
// zero selects the default of 25s.
func NewDispatcher(registry *Registry, clock clockwork.Clock, heartbeatInterval time.Duration) *Dispatcher {
	if heartbeatInterval <= 0 {
		heartbeatInterval = defaultHeartbeatInterval
	}
	return &Dispatcher{
		registry:          registry,
		clock:             clock,
		heartbeatInterval: heartbeatInterval,
	}
}

// Broadcast delivers an event to all open connections, or to the target
// user's connections when event.TargetUserID is set. Zero matching
// connections is not an error.
func (d *Dispatcher) Broadcast(event Event) {
	if event.TargetUserID != uuid.Nil {
		d.deliver(event, d.registry.SnapshotForUser(event.TargetUserID), "user")
		return
	}
	d.deliver(event, d.registry.SnapshotAll(), "all")
}

// BroadcastToUser delivers an event to one user's connections only. This is
// the dominant call pattern for per-user notifications.
func (d *Dispatcher) BroadcastToUser(userID uuid.UUID, event Event) {
	event.TargetUserID = userID
	d.Broadcast(event)
}

// ClientCount returns the current number of open connections.
func (d *Dispatcher) ClientCount() int {
	return d.registry.CountAll()
}

// UserClientCount returns the current number of open connections for a user.
func (d *Dispatcher) UserClientCount(userID uuid.UUID) int {
	return d.registry.CountForUser(userID)
}

// Close tears down every open connection. Used at process shutdown; the
// per-connection serve loops observe the teardown and return.
func (d *Dispatcher) Close() {
	conns := d.registry.SnapshotAll()
	for _, conn := range conns {
		d.teardown(conn)
	}
	slog.Info("Dispatcher closed", "connections_closed", len(conns))
}

func (d *Dispatcher) deliver(event Event, conns []*Connection, scope string) {
	start := d.clock.Now()
	event.Timestamp = start

	data, err := event.encode()
	if err != nil {
		slog.Error("Failed to encode broadcast event", "event_type", event.Type, "error", err)
		return
	}

	delivered, failed := 0, 0
	for _, conn := range conns {
		if err := conn.writeFrame(event.Type, data); err != nil {
			failed++
			metrics.DeliveriesTotal.WithLabelValues("error").Inc()
			slog.Warn("Dropping connection after write failure",
				"connection_id", conn.ID.String(),
				"event_type", event.Type,
				"error", err,
			)
			d.teardown(conn)
			continue
		}
		delivered++
		metrics.DeliveriesTotal.WithLabelValues("ok").Inc()
	}

	metrics.BroadcastsTotal.WithLabelValues(event.Type, scope).Inc()
	metrics.BroadcastDuration.Observe(d.clock.Since(start).Seconds())
	slog.Debug("Broadcast complete",
		"event_type", event.Type,
		"scope", scope,
		"delivered", delivered,
		"failed", failed,
	)
}

// teardown removes a connection from the registry and marks it closed. Both
// steps are idempotent, so the heartbeat-failure, cancellation, and
// write-failure paths may all race here safely. Unregister reports whether
// this call was the effective one, keeping the gauge exact.
func (d *Dispatcher) teardown(conn *Connection) {
	if d.registry.Unregister(conn.ID) {
		metrics.ConnectedClients.Dec()
	}
	conn.close()
}
