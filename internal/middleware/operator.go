package middleware

import (
	"crypto/subtle"

	"tawdifak-listings/internal/errors"

	"github.com/gin-gonic/gin"
)

// OperatorHeader carries the token that unlocks maintenance routes.
const OperatorHeader = "X-Operator-Token"

// OperatorOnly rejects requests whose OperatorHeader does not match token.
// An empty token rejects everything.
func OperatorOnly(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(OperatorHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.Error(errors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
