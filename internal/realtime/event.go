package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event type constants. Clients pattern-match on these strings, so they must
// never be renamed across versions.
const (
	TypeHeartbeat = "heartbeat"

	TypeEventCreated = "event:created"
	TypeEventUpdated = "event:updated"
	TypeEventDeleted = "event:deleted"

	TypeAttendanceAdded   = "attendance:added"
	TypeAttendanceUpdated = "attendance:updated"
	TypeAttendanceRemoved = "attendance:removed"

	TypeLikeAdded   = "like:added"
	TypeLikeRemoved = "like:removed"

	TypeCommentAdded   = "comment:added"
	TypeCommentDeleted = "comment:deleted"

	TypeProfileUpdated = "profile:updated"

	TypeFollowAdded    = "follow:added"
	TypeFollowRemoved  = "follow:removed"
	TypeFollowAccepted = "follow:accepted"
	TypeFollowPending  = "follow:pending"
	TypeFollowRejected = "follow:rejected"

	TypeFollowerAdded   = "follower:added"
	TypeFollowerRemoved = "follower:removed"
)

var knownTypes = map[string]struct{}{
	TypeEventCreated:      {},
	TypeEventUpdated:      {},
	TypeEventDeleted:      {},
	TypeAttendanceAdded:   {},
	TypeAttendanceUpdated: {},
	TypeAttendanceRemoved: {},
	TypeLikeAdded:         {},
	TypeLikeRemoved:       {},
	TypeCommentAdded:      {},
	TypeCommentDeleted:    {},
	TypeProfileUpdated:    {},
	TypeFollowAdded:       {},
	TypeFollowRemoved:     {},
	TypeFollowAccepted:    {},
	TypeFollowPending:     {},
	TypeFollowRejected:    {},
	TypeFollowerAdded:     {},
	TypeFollowerRemoved:   {},
}

// IsKnownType reports whether t belongs to the broadcast taxonomy.
// The heartbeat type is internal and not accepted from collaborators.
func IsKnownType(t string) bool {
	_, ok := knownTypes[t]
	return ok
}

// Event is one logical broadcast produced by business logic after a state
// change. Timestamp is stamped by the dispatcher at send time; values supplied
// by the caller are overwritten.
type Event struct {
	Type         string
	Data         any
	TargetUserID uuid.UUID // uuid.Nil delivers to all connections
	Timestamp    time.Time
}

// envelope is the JSON body carried on the data line of each frame.
type envelope struct {
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e Event) encode() ([]byte, error) {
	return json.Marshal(envelope{
		Type:      e.Type,
		Data:      e.Data,
		Timestamp: e.Timestamp,
	})
}
