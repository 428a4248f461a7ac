package server

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/burnoutberni/constellate-realtime/internal/metrics"
)

// handleEvents admits one long-lived SSE stream and blocks until the
// connection is torn down. The request context is the cancellation signal:
// when the client goes away, the lifecycle loop unregisters the stream.
func (s *Server) handleEvents(c echo.Context) error {
	ip := c.RealIP()
	ok, reason := s.limits.Acquire(ip)
	if !ok {
		metrics.ConnectionsRejectedTotal.WithLabelValues(string(reason)).Inc()
		slog.Warn("Connection rejected", "reason", reason, "ip", ip)
		status := http.StatusTooManyRequests
		if reason == LimitReasonGlobal {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, map[string]string{"error": "too many connections"})
	}
	defer s.limits.Release(ip)

	// uuid.Nil when the session resolved to no user
	userID, _ := c.Get(ctxKeyUserID).(uuid.UUID)

	h := c.Response().Header()
	h.Set(echo.HeaderContentType, "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()

	sink := newSSESink(c.Response(), s.config.WriteTimeout)
	if err := s.dispatcher.Serve(c.Request().Context(), userID, sink); err != nil {
		slog.Error("Failed to serve event stream", "error", err)
	}
	return nil
}
