package server

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/burnoutberni/constellate-realtime/internal/errors"
)

// Session keys
const (
	sessionName      = "constellate_session"
	sessionKeyUserID = "user_id"
	ctxKeyUserID     = "userID"
)

const userLookupTimeout = 2 * time.Second

// resolveUser resolves the optional authenticated user from the cookie
// session. Any resolution failure degrades the stream to anonymous instead of
// rejecting the connection; the push channel is usable without an account.
func (s *Server) resolveUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := s.sessionStore.Get(c.Request(), sessionName)
		if err != nil {
			return next(c)
		}

		raw, ok := session.Values[sessionKeyUserID].(string)
		if !ok {
			return next(c)
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			return next(c)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), userLookupTimeout)
		defer cancel()
		exists, err := s.users.Exists(ctx, userID)
		if err != nil {
			slog.Warn("User lookup failed, treating stream as anonymous", "error", err)
			return next(c)
		}
		if exists {
			c.Set(ctxKeyUserID, userID)
		}
		return next(c)
	}
}

// requireBroadcastToken guards the internal publish API with a shared bearer
// token.
func (s *Server) requireBroadcastToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.config.BroadcastToken)) != 1 {
			return apperrors.UnauthorizedError("invalid broadcast token")
		}
		return next(c)
	}
}
