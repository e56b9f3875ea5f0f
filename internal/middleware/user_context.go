package middleware

import (
	"vendor-tracker/internal/database"
	"vendor-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// InjectUser loads the authenticated user into the context as "CurrentUser".
// Must run after RequireAuth.
func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := UserID(c); uid > 0 {
			var user models.User
			if err := database.DB.First(&user, uid).Error; err == nil {
				c.Set("CurrentUser", user)
			}
		}

		c.Next()
	}
}

// CurrentUser returns the user set by InjectUser.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get("CurrentUser")
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
