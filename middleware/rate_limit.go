package middleware

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/NomadCrew/splitly-backend/errors"
	"github.com/NomadCrew/splitly-backend/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// WriteRateLimiter caps mutating requests per caller within a fixed window,
// counted in Redis with INCR. The window is armed by the first request that
// creates the counter; later requests, rejected ones included, never extend it.
// Reads pass through. The caller is the authenticated user, or the client IP
// before authentication. Redis failures let the request through.
func WriteRateLimiter(rdb redis.Cmdable, limit int, window time.Duration) gin.HandlerFunc {
	log := logger.GetLogger().Named("ratelimit")
	return func(c *gin.Context) {
		if !isWrite(c.Request.Method) || limit <= 0 {
			c.Next()
			return
		}

		caller := GetUserID(c)
		if caller == "" {
			caller = "ip:" + getClientIP(c)
		}
		key := fmt.Sprintf("ratelimit:write:%s", caller)
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warnw("Rate limit check failed", "key", key, "error", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				log.Warnw("Failed to arm rate limit window", "key", key, "error", err)
			}
		}

		if count > int64(limit) {
			ttl, err := rdb.TTL(ctx, key).Result()
			if err == nil && ttl < 0 {
				// Counter without expiry; a previous EXPIRE was lost.
				if err := rdb.Expire(ctx, key, window).Err(); err != nil {
					log.Warnw("Failed to arm rate limit window", "key", key, "error", err)
				}
			}
			if err != nil || ttl <= 0 {
				ttl = window
			}
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
			_ = c.Error(apperrors.RateLimitExceeded(int(ttl.Seconds())))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", int64(limit)-count))
		c.Next()
	}
}

func isWrite(method string) bool {
	switch method {
	case "POST", "PUT", "PATCH", "DELETE":
		return true
	}
	return false
}

// getClientIP prefers the first X-Forwarded-For entry, then X-Real-IP.
func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.ClientIP()
}
