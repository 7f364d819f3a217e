package middleware

import (
	"strconv"
	"time"

	"tawdifak-listings/internal/utils"

	"github.com/gin-gonic/gin"
)

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// route templates keep the label set bounded
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		utils.RecordHTTPRequest(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status()), start)
	}
}
