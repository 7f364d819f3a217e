package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "tawdifak_sid"
	SessionHeader = "X-Session-ID"

	sessionKey = "session_id"
)

// SessionMiddleware makes sure every request carries a session id. The id
// comes from the X-Session-ID header or the session cookie; anything that is
// not a UUID is replaced by a fresh one, which is sent back in both places.
func SessionMiddleware(maxAge time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id, _ = c.Cookie(SessionCookie)
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, int(maxAge/time.Second), "/", "", secure, true)
		c.Header(SessionHeader, id)
		c.Set(sessionKey, id)
		c.Next()
	}
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
