package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrConnectionClosed is returned by frame writes after teardown has started.
var ErrConnectionClosed = errors.New("connection closed")

// EventSink is the write half of one client stream. The transport adapter
// implements it; a returned error is terminal for the connection.
type EventSink interface {
	WriteFrame(event string, data []byte) error
}

// Connection is one open server-to-client stream. It exists in the registry
// exactly as long as its transport is believed open.
type Connection struct {
	ID          uuid.UUID
	UserID      uuid.UUID // uuid.Nil for anonymous streams
	ConnectedAt time.Time

	sink EventSink

	// writeMu serializes broadcast and heartbeat writes so frames never
	// interleave on the wire.
	writeMu   sync.Mutex
	closed    chan struct{}
	closeOnce sync.Once
}

func newConnection(userID uuid.UUID, sink EventSink, now time.Time) *Connection {
	return &Connection{
		ID:          uuid.New(),
		UserID:      userID,
		ConnectedAt: now,
		sink:        sink,
		closed:      make(chan struct{}),
	}
}

func (c *Connection) writeFrame(event string, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	select {
	case <-c.closed:
		return ErrConnectionClosed
	default:
	}
	return c.sink.WriteFrame(event, data)
}

// close marks the connection terminal. Safe to call from multiple teardown
// paths concurrently.
func (c *Connection) close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

// Done is closed once the connection has been torn down.
func (c *Connection) Done() <-chan struct{} {
	return c.closed
}
