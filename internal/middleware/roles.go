package middleware

import (
	"net/http"

	"github.com/devmarket/marketplace-api/internal/database"
	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/gin-gonic/gin"
)

const contextKeyCurrentUser = "current_user"

// RequireRole loads the authenticated user and checks the role against the
// allowed set. The loaded user is stored in context for the handler.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		allowed := false
		for _, role := range roles {
			if user.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
			c.Abort()
			return
		}

		c.Set(contextKeyCurrentUser, user)
		c.Next()
	}
}

// RequireAdmin restricts a route to admin accounts
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// GetCurrentUser retrieves the user loaded by RequireRole from context
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(contextKeyCurrentUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	return user, ok
}
