package middleware

import (
	"tawdifak-listings/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error as
// {"error": {"message", "code"}}.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		appErr := utils.LogAndMapError(c.Errors.Last().Err, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
			"session", SessionID(c))

		c.JSON(appErr.HTTPStatus, gin.H{
			"error": gin.H{
				"message": appErr.UserMessage,
				"code":    appErr.Code,
			},
		})
	}
}
