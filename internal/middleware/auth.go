package middleware

import (
	"net/http"
	"strings"

	"github.com/01moynul/vrshop-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a gin.HandlerFunc that acts as our "security guard".
// The session token is read from the session cookie, falling back to an
// "Authorization: Bearer" header for non-browser clients.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Find the token ---
		tokenString, ok := sessionToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		// 2. --- Validate Token ---
		userID, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		// 3. --- Success ---
		c.Set("userID", userID)
		c.Next()
	}
}

func sessionToken(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(auth.SessionCookieName); err == nil && cookie != "" {
		return cookie, true
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
		return parts[1], true
	}
	return "", false
}

// UserID returns the authenticated user set by AuthMiddleware.
func UserID(c *gin.Context) (int64, bool) {
	raw, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := raw.(int64)
	return id, ok
}
