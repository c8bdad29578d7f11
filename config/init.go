package config

import (
	"net/http"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/middleware"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/response"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/notification"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// InitApp builds the router with CORS, the websocket hub and the scheduler
func InitApp(c Config) (*gin.Engine, *melody.Melody, *cron.Cron) {
	if c.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Session-ID")
	configCors.AddExposeHeaders("X-Session-ID")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))
	router.Use(middleware.SessionMiddleware())
	router.Use(middleware.ErrorHandler())

	router.SetTrustedProxies(nil)

	return router, melody.New(), cron.New()
}

// InitWebSocket upgrades /ws?token=... and tags the session with the token's user,
// so notifications only reach their recipient
func InitWebSocket(router *gin.Engine, m *melody.Melody, tokens middleware.TokenVerifier) {
	router.GET("/ws", func(c *gin.Context) {
		userID, _, err := tokens.GetUserIDFromToken(c.Query("token"))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		m.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{
			notification.SessionUserKey: userID,
		})
	})
}
