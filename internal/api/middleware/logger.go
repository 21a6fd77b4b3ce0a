package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request with method, path, status and latency.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		if len(c.Errors) > 0 {
			log.Errorw("request failed",
				"method", c.Request.Method,
				"path", path,
				"status", status,
				"latency", latency,
				"errors", c.Errors.String(),
			)
			return
		}
		log.Infow("request",
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", latency,
		)
	}
}
