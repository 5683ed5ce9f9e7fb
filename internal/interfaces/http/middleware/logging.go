package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/supportdesk/internal/shared/constants"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

// CustomLogger writes an access log line per API request: 5xx as errors,
// 4xx as warnings and the rest at info.
func CustomLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			// RequestURI still carries the API prefix the edge router stripped.
			"uri", c.Request.RequestURI,
			"route", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
		}

		if id := c.Param("id"); id != "" {
			args = append(args, "ticket_id", id)
		}

		if requestID := c.GetHeader(constants.HeaderXRequestID); requestID != "" {
			args = append(args, "request_id", requestID)
		}

		switch {
		case status >= 500:
			log.Errorw("api request failed", args...)
		case status >= 400:
			log.Warnw("api request rejected", args...)
		default:
			log.Infow("api request served", args...)
		}
	}
}
