package middleware

import (
	"net/http"

	"curabot/utils"

	"github.com/gin-gonic/gin"
)

// Authorize allows only callers whose role is one of roles. It must run after JWTAuthMiddleware.
func Authorize(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if _, role := CurrentUser(c); !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: "Forbidden - Access Denied"})
			return
		}
		c.Next()
	}
}
