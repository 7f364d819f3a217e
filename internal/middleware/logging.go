package middleware

import (
	"time"

	"tawdifak-listings/pkg/logger"

	"github.com/gin-gonic/gin"
)

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		if sid := SessionID(c); sid != "" {
			logger.GlobalLogger.Printf("%s %s %d %v session=%s", method, path, status, latency, sid)
			return
		}
		logger.GlobalLogger.Printf("%s %s %d %v", method, path, status, latency)
	}
}
