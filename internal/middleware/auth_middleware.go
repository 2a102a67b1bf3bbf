package middleware

import (
	"net/http"
	"strings"

	"mobile-shop-erp/internal/auth"
	"mobile-shop-erp/internal/database"
	"mobile-shop-erp/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks the bearer token and loads the user so disabled
// accounts are cut off immediately, not when their token expires.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header must start with Bearer"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or inactive user"})
			c.Abort()
			return
		}

		// Downstream handlers read these instead of re-parsing the token.
		c.Set("userID", user.ID)
		c.Set("role", user.Role)
		c.Set("user", user)
		c.Next()
	}
}

// RequireRole guards admin-only routes (sale deletion, backups, hard deletes).
func RequireRole(allowedRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != allowedRole {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
