package middleware

import (
	"net/http"
	"strings"

	"auth/utils"

	"github.com/gin-gonic/gin"
)

// JWTMiddleware rejects requests without a valid Bearer access token
// and stores the caller identity in the context.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}

// OptionalJWTMiddleware stores the caller identity when a valid token
// is present but lets anonymous requests through.
func OptionalJWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := claimsFromHeader(c); ok {
			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user id from the context
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// GetUserEmail returns the authenticated user email from the context
func GetUserEmail(c *gin.Context) (string, bool) {
	value, exists := c.Get("user_email")
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	return email, ok
}

func claimsFromHeader(c *gin.Context) (*utils.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}

	claims, err := utils.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}
