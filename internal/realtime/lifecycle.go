package realtime

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/burnoutberni/constellate-realtime/internal/metrics"
)

var heartbeatPayload = []byte("{}")

// Serve owns one connection's life from accept to teardown: it registers the
// stream, runs the heartbeat loop, and unregisters on the first terminal
// condition. It blocks until the connection is torn down, so the transport
// handler can simply return afterwards and let the underlying stream close.
//
// Terminal conditions, all equivalent: the transport's cancellation signal
// fires, a heartbeat write fails, or the dispatcher evicts the connection
// after a broadcast write failure.
func (d *Dispatcher) Serve(ctx context.Context, userID uuid.UUID, sink EventSink) error {
	conn := newConnection(userID, sink, d.clock.Now())
	if err := d.registry.Register(conn); err != nil {
		return err
	}
	metrics.ConnectedClients.Inc()
	metrics.ConnectionsOpenedTotal.Inc()

	logger := slog.With("connection_id", conn.ID.String())
	if conn.UserID != uuid.Nil {
		logger = logger.With("user_id", conn.UserID.String())
	}
	logger.Debug("Connection registered", "total_clients", d.registry.CountAll())

	defer d.teardown(conn)

	ticker := d.clock.NewTicker(d.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Connection cancelled by transport")
			return nil
		case <-conn.Done():
			logger.Debug("Connection evicted")
			return nil
		case <-ticker.Chan():
			if err := conn.writeFrame(TypeHeartbeat, heartbeatPayload); err != nil {
				metrics.HeartbeatFailuresTotal.Inc()
				logger.Debug("Heartbeat failed, dropping connection", "error", err)
				return nil
			}
		}
	}
}
