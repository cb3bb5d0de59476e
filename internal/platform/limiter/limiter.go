// Package limiter throttles login attempts with a Redis counter per
// username+IP window. The limiter is optional: a nil *LoginLimiter allows
// everything, so the API runs without Redis configured.
package limiter

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hantaray/movie-api/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

type LoginLimiter struct {
	rdb         *redis.Client
	maxAttempts int
	window      time.Duration
}

// Connect returns nil when no Redis address is configured.
func Connect() *LoginLimiter {
	cfg := config.AppConfig
	if cfg.RedisAddr == "" {
		log.Println("No REDIS_ADDR configured, login throttling disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Successfully connected to Redis!")

	return &LoginLimiter{
		rdb:         rdb,
		maxAttempts: cfg.LoginMaxAttempts,
		window:      cfg.LoginWindow,
	}
}

func (l *LoginLimiter) Close() {
	if l != nil && l.rdb != nil {
		l.rdb.Close()
		fmt.Println("Redis connection closed.")
	}
}

// Allow records one attempt for the identifier and reports whether it is
// still within the window budget. Redis failures fail open: a broken
// limiter must not lock every user out.
func (l *LoginLimiter) Allow(ctx context.Context, identifier string) bool {
	if l == nil {
		return true
	}

	key := "login_attempts:" + identifier
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("login limiter unavailable: %v", err)
		return true
	}
	if count == 1 {
		l.rdb.Expire(ctx, key, l.window)
	}
	return count <= int64(l.maxAttempts)
}

// Reset clears the attempt counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, identifier string) {
	if l == nil {
		return
	}
	l.rdb.Del(ctx, "login_attempts:"+identifier)
}
