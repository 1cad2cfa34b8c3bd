package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPLimiter_Burst(t *testing.T) {
	l := NewIPLimiter(1, 2)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, l.Allow("10.0.0.2"), "other IPs have their own budget")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"), "tokens refill over time")
}

func TestIPLimiter_EvictsIdleVisitors(t *testing.T) {
	l := NewIPLimiter(1, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.2")
	require.Equal(t, 2, l.Len())

	now = now.Add(DefaultIdleTTL + time.Second)
	l.Allow("10.0.0.3")
	assert.Equal(t, 1, l.Len())
}

func TestIPLimiter_Middleware(t *testing.T) {
	l := NewIPLimiter(1, 1)
	e := echo.New()
	handler := l.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search/remote?query=x", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, he.Code)
}
