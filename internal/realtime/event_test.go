package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventEncode(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	event := Event{
		Type:      TypeCommentAdded,
		Data:      map[string]string{"comment_id": "c1", "event_id": "e1"},
		Timestamp: ts,
	}

	data, err := event.encode()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "comment:added", decoded["type"])
	assert.Equal(t, "2025-06-01T12:00:00Z", decoded["timestamp"])
	assert.Equal(t, map[string]any{"comment_id": "c1", "event_id": "e1"}, decoded["data"])
}

func TestEventEncode_OmitsEmptyData(t *testing.T) {
	data, err := Event{Type: TypeProfileUpdated, Timestamp: time.Now()}.encode()
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"data"`)
}

func TestIsKnownType(t *testing.T) {
	for _, typ := range []string{
		TypeEventCreated, TypeEventUpdated, TypeEventDeleted,
		TypeAttendanceAdded, TypeAttendanceUpdated, TypeAttendanceRemoved,
		TypeLikeAdded, TypeLikeRemoved,
		TypeCommentAdded, TypeCommentDeleted,
		TypeProfileUpdated,
		TypeFollowAdded, TypeFollowRemoved, TypeFollowAccepted,
		TypeFollowPending, TypeFollowRejected,
		TypeFollowerAdded, TypeFollowerRemoved,
	} {
		assert.True(t, IsKnownType(typ), typ)
	}

	assert.False(t, IsKnownType("heartbeat"), "heartbeat is internal, not publishable")
	assert.False(t, IsKnownType("event:exploded"))
	assert.False(t, IsKnownType(""))
}
