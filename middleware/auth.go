package middleware

import (
	"net/http"
	"strings"

	"delivery-platform/config"
	"delivery-platform/models"
	"delivery-platform/services"

	"github.com/gin-gonic/gin"
)

const (
	ctxAccountID = "accountID"
	ctxRole      = "role"
)

// AuthRequired validates the bearer token against the session store and
// injects the resolved identity into the request context. There is no
// ambient auth state — every request re-validates.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		session, err := services.Validate(config.DB, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid or expired token"})
			c.Abort()
			return
		}
		c.Set(ctxAccountID, session.AccountID)
		c.Set(ctxRole, string(session.Role))
		c.Next()
	}
}

// RoleRequired enforces that the caller's session carries one of the
// allowed roles. A valid session with the wrong role is 403, not 401.
func RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(ctxRole)
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "role not found in context"})
			c.Abort()
			return
		}
		callerRole := models.Role(roleVal.(string))
		for _, r := range roles {
			if callerRole == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "access denied for role " + string(callerRole)})
		c.Abort()
	}
}

// GetAccountID extracts the validated account id from context
func GetAccountID(c *gin.Context) string {
	val, _ := c.Get(ctxAccountID)
	id, _ := val.(string)
	return id
}
