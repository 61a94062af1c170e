package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/lam3a/rush-backend/utils"
)

// WebSocketAuthMiddleware authenticates feed connections. Browsers cannot
// set headers on websocket upgrades, so the token rides a query parameter.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
