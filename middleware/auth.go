package middleware

import (
	"net/http"
	"strings"

	"curabot/utils"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "userID"
	ctxRole   = "role"
)

// JWTAuthMiddleware rejects requests without a valid bearer token and
// stores the token's subject and role on the context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Unauthorized - No Token Provided"})
			return
		}
		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Unauthorized - Invalid Token"})
			return
		}
		c.Set(ctxUserID, claims.Subject)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// OptionalJWTAuth attaches the caller identity when a valid token is sent
// and lets anonymous requests through.
func OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if claims, err := utils.ExtractClaims(tokenString); err == nil {
				c.Set(ctxUserID, claims.Subject)
				c.Set(ctxRole, claims.Role)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user id and role, empty when anonymous.
func CurrentUser(c *gin.Context) (userID, role string) {
	return c.GetString(ctxUserID), c.GetString(ctxRole)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
