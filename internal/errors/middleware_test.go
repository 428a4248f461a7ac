package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHandler(t *testing.T, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Use(Middleware())
	e.GET("/test", handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_NoError(t *testing.T) {
	rec := runHandler(t, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMiddleware_StructuredError(t *testing.T) {
	rec := runHandler(t, func(c echo.Context) error {
		return ValidationError("bad input").WithContext("field", "type")
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bad input", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, map[string]any{"field": "type"}, resp.Context)
}

func TestMiddleware_PlainErrorBecomesInternal(t *testing.T) {
	rec := runHandler(t, func(c echo.Context) error {
		return errors.New("something broke")
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error, "cause is not leaked to clients")
	assert.Equal(t, TypeInternal, resp.Type)
}

func TestMiddleware_EchoHTTPErrorPassthrough(t *testing.T) {
	rec := runHandler(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "route gone")
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "route gone")
}
