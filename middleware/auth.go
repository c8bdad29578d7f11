package middleware

import (
	"strings"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/response"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"

	"github.com/gin-gonic/gin"
)

// TokenVerifier is satisfied by services.TokenManager
type TokenVerifier interface {
	GetUserIDFromToken(token string) (uint, int, error)
}

// AuthMiddleware verifies the bearer token and, when roles are given, requires one of them
func AuthMiddleware(tokens TokenVerifier, roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		userID, userRole, err := tokens.GetUserIDFromToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 && !hasRole(userRole, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Set(constants.CtxUserID, userID)
		c.Set(constants.CtxUserRole, userRole)
		c.Next()
	}
}

// RoleMiddleware checks the role already placed in the context by AuthMiddleware
func RoleMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(constants.CtxUserRole)
		if !exists {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		role, _ := userRole.(int)
		if !hasRole(role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func hasRole(role int, roles []int) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// CurrentActor reads the authenticated caller from the context
func CurrentActor(c *gin.Context) services.Actor {
	var actor services.Actor
	if v, ok := c.Get(constants.CtxUserID); ok {
		actor.UserID, _ = v.(uint)
	}
	if v, ok := c.Get(constants.CtxUserRole); ok {
		actor.Role, _ = v.(int)
	}
	return actor
}

// ErrorHandler renders the last error attached with c.Error when no response was written
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.FromError(c, c.Errors.Last().Err)
		}
	}
}
