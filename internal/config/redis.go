package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from REDIS_* environment
// variables. Redis is optional: when REDIS_ADDR is unset or the ping
// fails, nil is returned and callers run without caching or rate
// limiting.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("[REDIS] REDIS_ADDR not set, redis disabled")
		return nil
	}

	db := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			log.Printf("[REDIS] invalid REDIS_DB %q, using 0", s)
		} else {
			db = n
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] ping failed (%v), redis disabled", err)
		_ = client.Close()
		return nil
	}

	log.Printf("[REDIS] connected to %s (db %d)", addr, db)
	return client
}
