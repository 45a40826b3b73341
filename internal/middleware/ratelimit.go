package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/airline-booking/internal/config"
)

// counterStore is the slice of the Redis API the limiter needs.
// *redis.Client satisfies it.
type counterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RateLimit applies a fixed-window limit per caller using Redis
// INCR + EXPIRE. The first request in a window creates the counter and
// sets its TTL; once the counter exceeds the limit, requests get 429
// with a Retry-After header. With a nil client the limiter is a no-op.
func RateLimit(rdb *redis.Client, cfg config.RateLimitConfig) echo.MiddlewareFunc {
	if rdb == nil || !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return rateLimitWith(rdb, cfg)
}

func rateLimitWith(store counterStore, cfg config.RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := cfg.Prefix + ":" + clientKey(c)

			n, err := store.Incr(ctx, key).Result()
			if err != nil {
				// Redis down: fail open.
				return next(c)
			}
			if n == 1 {
				store.Expire(ctx, key, cfg.Window)
			}
			if n > int64(cfg.Limit) {
				ttl, _ := store.TTL(ctx, key).Result()
				if ttl < 0 {
					// INCR succeeded earlier but the EXPIRE after it
					// never ran, leaving an immortal counter. Re-arm
					// the window instead of throttling forever.
					store.Expire(ctx, key, cfg.Window)
					ttl = cfg.Window
				}
				retry := int(ttl.Seconds())
				if retry < 1 {
					retry = int(cfg.Window.Seconds())
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
