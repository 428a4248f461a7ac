package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Event stream (optional session auth resolves the user)
	s.echo.GET("/events", s.handleEvents, s.resolveUser)

	// Internal publish API (collaborator services, token guarded)
	s.echo.POST("/api/broadcast", s.handleBroadcast, s.requireBroadcastToken)
	s.echo.GET("/api/clients", s.handleClientCount, s.requireBroadcastToken)
	s.echo.GET("/api/clients/:userID", s.handleUserClientCount, s.requireBroadcastToken)
}
