package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig controls the Redis fixed-window rate limiter.
type RateLimitConfig struct {
	Enabled bool          // master switch
	Limit   int           // max requests per window
	Window  time.Duration // window length
	Prefix  string        // key namespace in Redis
}

// LoadRateLimitConfig reads RATE_LIMIT_* environment variables,
// falling back to defaults when they are absent.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: true,
		Limit:   120,
		Window:  time.Minute,
		Prefix:  "rl",
	}
	if s := os.Getenv("RATE_LIMIT_ENABLED"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			cfg.Enabled = b
		}
	}
	if s := os.Getenv("RATE_LIMIT_MAX"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.Limit = n
		}
	}
	if s := os.Getenv("RATE_LIMIT_WINDOW_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.Window = time.Duration(n) * time.Second
		}
	}
	if s := os.Getenv("RATE_LIMIT_PREFIX"); s != "" {
		cfg.Prefix = s
	}
	return cfg
}
