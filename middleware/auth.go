package middleware

import (
	"net/http"
	"strings"

	"fixhub/models"
	"fixhub/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	CtxActorID = "actorID"
	CtxRole    = "role"
)

// AuthMiddleware validates the bearer token and stores the actor's identity
// in the request context. When allowed roles are given, actors of any other
// role are rejected with 403.
func AuthMiddleware(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		actorID, role, err := utils.ExtractActorFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if len(allowed) > 0 {
			permitted := false
			for _, r := range allowed {
				if role == r {
					permitted = true
					break
				}
			}
			if !permitted {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "This endpoint is not available for your role"})
				return
			}
		}

		c.Set(CtxActorID, actorID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// Actor returns the authenticated actor's ID and role from the context.
func Actor(c *gin.Context) (string, models.Role) {
	actorID := c.GetString(CtxActorID)
	role, _ := c.Get(CtxRole)
	r, ok := role.(models.Role)
	if !ok {
		return actorID, ""
	}
	return actorID, r
}
