package realtime

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Registry is the authoritative index of open connections. It does pure
// bookkeeping: no I/O happens under the lock, so operations never block on a
// slow client. Both indices mutate under the same mutex, which is what keeps
// them consistent with each other.
type Registry struct {
	mu     sync.RWMutex
	conns  map[uuid.UUID]*Connection
	byUser map[uuid.UUID]map[uuid.UUID]*Connection
}

func NewRegistry() *Registry {
	return &Registry{
		conns:  make(map[uuid.UUID]*Connection),
		byUser: make(map[uuid.UUID]map[uuid.UUID]*Connection),
	}
}

// Register inserts a connection into both indices. Connection ids are
// generated fresh at accept time, so a duplicate indicates a caller bug.
func (r *Registry) Register(conn *Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conns[conn.ID]; exists {
		return fmt.Errorf("connection %s already registered", conn.ID)
	}
	r.conns[conn.ID] = conn

	if conn.UserID != uuid.Nil {
		userConns, exists := r.byUser[conn.UserID]
		if !exists {
			userConns = make(map[uuid.UUID]*Connection)
			r.byUser[conn.UserID] = userConns
		}
		userConns[conn.ID] = conn
	}
	return nil
}

// Unregister removes a connection from both indices and reports whether it was
// present. Idempotent: heartbeat failure and transport cancellation may both
// tear the same connection down, and the second call is a no-op.
func (r *Registry) Unregister(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, exists := r.conns[id]
	if !exists {
		return false
	}
	delete(r.conns, id)

	if conn.UserID != uuid.Nil {
		userConns := r.byUser[conn.UserID]
		delete(userConns, id)
		if len(userConns) == 0 {
			delete(r.byUser, conn.UserID)
		}
	}
	return true
}

// CountAll returns the number of open connections.
func (r *Registry) CountAll() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// CountForUser returns the number of open connections for one user.
// A user with no connections yields 0.
func (r *Registry) CountForUser(userID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID])
}

// SnapshotAll returns a point-in-time copy of all open connections, so a
// fan-out can iterate safely while connections register and unregister.
func (r *Registry) SnapshotAll() []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]*Connection, 0, len(r.conns))
	for _, conn := range r.conns {
		snapshot = append(snapshot, conn)
	}
	return snapshot
}

// SnapshotForUser returns a point-in-time copy of one user's connections.
func (r *Registry) SnapshotForUser(userID uuid.UUID) []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userConns := r.byUser[userID]
	snapshot := make([]*Connection, 0, len(userConns))
	for _, conn := range userConns {
		snapshot = append(snapshot, conn)
	}
	return snapshot
}
