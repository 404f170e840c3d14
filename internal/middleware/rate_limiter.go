package middleware

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

//go:embed rate_limiter.lua
var luaScript string

// RateLimiterConfig holds rate limiter configuration
type RateLimiterConfig struct {
	Capacity   int     // Maximum number of tokens (max requests)
	RefillRate float64 // Tokens refilled per second
}

// DefaultRateLimiterConfig returns default rate limiter settings
// 10 requests per second with burst capacity of 20
func DefaultRateLimiterConfig() *RateLimiterConfig {
	return &RateLimiterConfig{
		Capacity:   20,
		RefillRate: 10.0,
	}
}

// RateLimiterMiddleware implements Token Bucket algorithm using Redis + Lua script.
// Keys are per client IP: the guarded routes (register, login) are the
// anonymous ones, so there is no user ID to key on yet.
func RateLimiterMiddleware(redisClient *redis.Client, config *RateLimiterConfig) gin.HandlerFunc {
	// Load Lua script into Redis (SHA hash will be cached)
	ctx := context.Background()
	scriptSHA, err := redisClient.ScriptLoad(ctx, luaScript).Result()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load Lua script for rate limiter")
	}

	return func(c *gin.Context) {
		key := ClientRateLimiterKey(c.ClientIP())

		now := time.Now().Unix()

		result, err := redisClient.EvalSha(ctx, scriptSHA, []string{key},
			config.Capacity,
			config.RefillRate,
			now,
		).Result()

		if err != nil {
			logrus.WithError(err).Error("Failed to execute rate limiter Lua script")
			// Fail open: allow request if Redis fails
			c.Next()
			return
		}

		allowed := result.(int64)
		if allowed == 0 {
			c.String(http.StatusTooManyRequests, "Too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Build cache key for per-client rate limiting
func ClientRateLimiterKey(clientIP string) string {
	return fmt.Sprintf("rate_limiter:client:%s", clientIP)
}
