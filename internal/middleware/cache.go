package middleware

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/airline-booking/internal/config"
)

// cachedResponse is the JSON envelope stored in Redis for a cached
// HTTP response.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyRecorder tees the response body so it can be stored after the
// handler writes it.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (r *bodyRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

// Cache serves public GET responses from Redis. Only 200 responses are
// stored, keyed by path and query string. A nil client disables the
// cache entirely.
func Cache(rdb *redis.Client, cfg config.CacheConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || !cfg.Enabled || c.Request().Method != http.MethodGet {
				return next(c)
			}

			key := cacheKey(cfg.Prefix, c)
			ctx := c.Request().Context()

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var entry cachedResponse
				if json.Unmarshal(raw, &entry) == nil {
					return c.Blob(entry.Status, entry.ContentType, entry.Body)
				}
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				return err
			}

			if rec.status == http.StatusOK && rec.buf.Len() <= cfg.MaxBodyBytes {
				entry := cachedResponse{
					Status:      rec.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        rec.buf.Bytes(),
				}
				if raw, err := json.Marshal(entry); err == nil {
					// Best effort: a failed SET only costs a cache miss.
					rdb.Set(ctx, key, raw, cfg.TTL)
				}
			}
			return nil
		}
	}
}

// cacheKey hashes the request path and query into a fixed-size key.
func cacheKey(prefix string, c echo.Context) string {
	h := sha1.Sum([]byte(c.Request().URL.Path + "?" + c.Request().URL.RawQuery))
	return prefix + ":" + hex.EncodeToString(h[:])
}
