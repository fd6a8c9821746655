// Package cache holds the Redis-backed pieces of the API: the catalog
// read-through cache. The rate limiter in middleware shares the same client.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to addr. An empty addr or an unreachable server
// returns nil, which every caller treats as "caching disabled".
func NewRedisClient(addr string) *redis.Client {
	if addr == "" {
		log.Println("REDIS_ADDR not set. Caching and rate limiting disabled.")
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("WARNING: Failed to connect to Redis at %s: %v. Caching disabled.", addr, err)
		client.Close()
		return nil
	}

	log.Println("Redis connected successfully:", pong)
	return client
}
