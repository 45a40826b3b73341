package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airline-booking/internal/config"
)

// fakeCounter drives rateLimitWith without a Redis server.
type fakeCounter struct {
	count   int64
	ttl     time.Duration
	expired []time.Duration
}

func (f *fakeCounter) Incr(_ context.Context, _ string) *redis.IntCmd {
	f.count++
	return redis.NewIntResult(f.count, nil)
}

func (f *fakeCounter) Expire(_ context.Context, _ string, ttl time.Duration) *redis.BoolCmd {
	f.expired = append(f.expired, ttl)
	f.ttl = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCounter) TTL(_ context.Context, _ string) *redis.DurationCmd {
	return redis.NewDurationResult(f.ttl, nil)
}

func newLimitContext(e *echo.Echo) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/v1/flights", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRateLimitSetsWindowOnFirstRequest(t *testing.T) {
	e := echo.New()
	store := &fakeCounter{ttl: -1}
	mw := rateLimitWith(store, config.RateLimitConfig{Enabled: true, Limit: 2, Window: time.Minute, Prefix: "rl"})

	c, rec := newLimitContext(e)
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.expired, 1)
	assert.Equal(t, time.Minute, store.expired[0])
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	e := echo.New()
	store := &fakeCounter{ttl: -1}
	mw := rateLimitWith(store, config.RateLimitConfig{Enabled: true, Limit: 2, Window: time.Minute, Prefix: "rl"})

	for i := 0; i < 2; i++ {
		c, rec := newLimitContext(e)
		require.NoError(t, mw(okHandler)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	c, rec := newLimitContext(e)
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRateLimitHealsCounterWithoutTTL(t *testing.T) {
	e := echo.New()
	// A counter that survived its window: already over the limit and
	// reporting no TTL, as if the EXPIRE after the first INCR was lost.
	store := &fakeCounter{count: 10, ttl: -1}
	mw := rateLimitWith(store, config.RateLimitConfig{Enabled: true, Limit: 2, Window: time.Minute, Prefix: "rl"})

	c, rec := newLimitContext(e)
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// The key got a fresh window so it expires instead of throttling forever.
	require.NotEmpty(t, store.expired)
	assert.Equal(t, time.Minute, store.expired[len(store.expired)-1])
	assert.Equal(t, time.Minute, store.ttl)
}
