package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/burnoutberni/constellate-realtime/internal/config"
	apperrors "github.com/burnoutberni/constellate-realtime/internal/errors"
	"github.com/burnoutberni/constellate-realtime/internal/realtime"
)

const sessionMaxAgeDays = 7

// userStore resolves session user ids at connection admission.
type userStore interface {
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}

// postgresHealthChecker is a minimal interface for readiness checks.
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo         *echo.Echo
	config       *config.Config
	dispatcher   *realtime.Dispatcher
	users        userStore
	db           postgresHealthChecker
	sessionStore *sessions.CookieStore
	limits       *ConnectionLimits
	startTime    time.Time
}

func NewServer(cfg *config.Config, dispatcher *realtime.Dispatcher, users userStore, db postgresHealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * sessionMaxAgeDays,
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}

	srv := &Server{
		echo:         e,
		config:       cfg,
		dispatcher:   dispatcher,
		users:        users,
		db:           db,
		sessionStore: sessionStore,
		limits:       NewConnectionLimits(cfg.MaxConnections, cfg.MaxConnectionsPerIP, cfg.ConnectionRate, cfg.ConnectionBurst),
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
