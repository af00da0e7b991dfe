package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "loan_session"
	ctxSessionID  = "sessionID"

	sessionTTL = 30 * 24 * time.Hour
)

// SessionMiddleware assigns every visitor a session ID cookie. The ID is the
// key for all persisted flow state.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(sessionCookie, sid, int(sessionTTL.Seconds()), "/", "", false, true)
		}
		c.Set(ctxSessionID, sid)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
