package middleware

import (
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionMiddleware tags every request with a session id, reusing X-Session-ID when sent.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		c.Set(constants.CtxSessionID, sessionID)
		c.Writer.Header().Set("X-Session-ID", sessionID)
		c.Next()
	}
}
