package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/burnoutberni/constellate-realtime/internal/errors"
	"github.com/burnoutberni/constellate-realtime/internal/realtime"
)

// broadcastRequest is the publish payload sent by collaborator services after
// a state change has been committed.
type broadcastRequest struct {
	Type         string          `json:"type"`
	Data         json.RawMessage `json:"data"`
	TargetUserID string          `json:"target_user_id"`
}

func (s *Server) handleBroadcast(c echo.Context) error {
	var req broadcastRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if !realtime.IsKnownType(req.Type) {
		return apperrors.ValidationError("unknown event type").WithContext("event_type", req.Type)
	}

	event := realtime.Event{Type: req.Type}
	if len(req.Data) > 0 {
		event.Data = req.Data
	}

	if req.TargetUserID != "" {
		targetID, err := uuid.Parse(req.TargetUserID)
		if err != nil {
			return apperrors.ValidationError("target_user_id must be a UUID")
		}
		s.dispatcher.BroadcastToUser(targetID, event)
	} else {
		s.dispatcher.Broadcast(event)
	}

	return c.JSON(http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleClientCount(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]int{"clients": s.dispatcher.ClientCount()})
}

func (s *Server) handleUserClientCount(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		return apperrors.ValidationError("user id must be a UUID")
	}
	return c.JSON(http.StatusOK, map[string]int{"clients": s.dispatcher.UserClientCount(userID)})
}
