package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/01moynul/vrshop-golang/internal/store"
	"github.com/gin-gonic/gin"
)

//
// --- Role-Based Middleware ---
//
// Runs *after* AuthMiddleware(). Reads the 'userID' from the context,
// looks up that user's role, and enforces it. The role always comes from
// the users table, never from the request.
//

// RoleLookup resolves a user's current role.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID int64) (string, error)
}

// AdminMiddleware only lets users with the admin role through.
func AdminMiddleware(roles RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get userID from AuthMiddleware
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		// 2. Look up the user's role
		role, err := roles.RoleOf(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// The account behind a still-valid token is gone.
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
				return
			}
			log.Printf("role lookup for user %d failed: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error checking role"})
			return
		}

		// 3. Check permission
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: admin role required"})
			return
		}

		// 4. Success! Add role to context and proceed.
		c.Set("userRole", role)
		c.Next()
	}
}
