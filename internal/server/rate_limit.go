package server

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/waterline/internal/observability/logger"
	"github.com/smallbiznis/waterline/internal/ratelimit"
	"go.uber.org/zap"
)

const rateLimitEndpointLogin = "login"

// LoginRateLimit throttles login attempts per client address.
func (s *Server) LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.loginLimiter == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		result, err := s.loginLimiter.Allow(ctx, c.ClientIP())
		if err != nil {
			logger.FromContext(ctx).Warn("login rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !result.Allowed {
			s.denyRateLimit(c, rateLimitEndpointLogin, result)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Next()
	}
}

func (s *Server) denyRateLimit(c *gin.Context, endpoint string, result *ratelimit.Result) {
	ctx := c.Request.Context()
	logger.FromContext(ctx).Warn("rate limit exceeded", zap.String("endpoint", endpoint))
	s.obsMetrics.RecordRateLimitDenied(ctx, endpoint)

	retry := int(math.Ceil(result.RetryAfter.Seconds()))
	if retry < 1 {
		retry = 1
	}
	c.Header("Retry-After", strconv.Itoa(retry))
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", "0")
	AbortWithError(c, ErrRateLimited)
}
