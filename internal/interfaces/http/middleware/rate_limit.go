package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/infrastructure/ratelimit"
	"legalease.backend/internal/interfaces/http/response"
	"legalease.backend/pkg/logger"
	"legalease.backend/pkg/metrics"
)

// RateLimitMiddleware enforces policy per route and client IP
func RateLimitMiddleware(limiter *ratelimit.Limiter, policy ratelimit.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ip := ClientIP(c.Request)

		res := limiter.Check(c.Request.Context(), route+":"+ip, policy)

		c.Header("X-RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		c.Header("X-RateLimit-Reset", res.ResetAt.UTC().Format(time.RFC3339))

		if !res.Allowed {
			c.Header("Retry-After", strconv.FormatInt(res.RetryAfterSeconds(), 10))
			metrics.RateLimited(policy.Name)
			logger.Warn(c.Request.Context(), "Rate limit exceeded",
				zap.String("policy", policy.Name),
				zap.String("route", route),
				zap.String("ip", ip),
			)
			response.Error(c, domainerrors.TooManyRequests("Too many requests, please try again later"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClientIP is the first X-Forwarded-For entry, then X-Real-IP, then "unknown"
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return "unknown"
}
