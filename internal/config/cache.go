package config

import (
	"os"
	"strconv"
	"time"
)

// CacheConfig controls the Redis response cache for public catalog
// reads.
type CacheConfig struct {
	Enabled      bool          // master switch
	TTL          time.Duration // how long cached responses live
	Prefix       string        // key namespace in Redis
	MaxBodyBytes int           // responses larger than this are not cached
}

// LoadCacheConfig reads CACHE_* environment variables, falling back to
// sensible defaults when they are absent.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:      true,
		TTL:          30 * time.Second,
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
	if s := os.Getenv("CACHE_ENABLED"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			cfg.Enabled = b
		}
	}
	if s := os.Getenv("CACHE_TTL_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.TTL = time.Duration(n) * time.Second
		}
	}
	if s := os.Getenv("CACHE_PREFIX"); s != "" {
		cfg.Prefix = s
	}
	if s := os.Getenv("CACHE_MAX_BODY_BYTES"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.MaxBodyBytes = n
		}
	}
	return cfg
}
