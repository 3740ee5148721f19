package middleware

import (
	"net/http"

	"lexaid/models"

	"github.com/gin-gonic/gin"
)

// RequireRoles gates a route to the listed member types. It must run after
// AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		acct, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !allowed[acct.MemberType] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequireStaff gates a route to any staff role.
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(models.RoleLawyer, models.RoleAdmin, models.RoleFrontdesk, models.RoleHead)
}
