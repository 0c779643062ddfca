package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gamehub/auth"
)

// Limiter is the rate-limit counter the middleware consults. Implemented by
// cache.Cache; tests substitute a stand-in.
type Limiter interface {
	CheckRateLimit(ctx context.Context, key string, maxRequests int, window time.Duration) (bool, int, error)
}

// RateLimit enforces per-caller request limits. Authenticated callers are
// limited by UID, anonymous ones by IP. Infrastructure errors from the
// limiter fail open: the request proceeds uncounted.
func RateLimit(l Limiter, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := ctx.ClientIP()
		if s, exists := ctx.Get("session"); exists {
			if session, ok := s.(*auth.Session); ok {
				key = session.UID
			}
		}

		allowed, remaining, err := l.CheckRateLimit(ctx.Request.Context(), key, maxRequests, window)
		if err != nil {
			// Redis hiccup; fail open.
			ctx.Next()
			return
		}

		ctx.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		ctx.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
