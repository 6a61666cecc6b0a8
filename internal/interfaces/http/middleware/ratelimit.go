package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lineup/internal/infrastructure/ratelimit"
	"lineup/internal/shared/logger"
	"lineup/internal/shared/utils"
)

// IssueRateLimit throttles the ticket issuance endpoint per client IP so one
// kiosk or script cannot drain a counter's daily capacity. Shared redis
// state keeps the limit correct across instances.
func IssueRateLimit(limiter ratelimit.IssueLimiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// When redis is unavailable the queue keeps working; capacity
			// enforcement in the engine is the hard limit.
			log.Warnw("rate limiter unavailable, allowing request",
				"client_ip", c.ClientIP(),
				"error", err,
			)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many tickets requested, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
