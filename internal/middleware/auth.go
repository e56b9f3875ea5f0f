package middleware

import (
	"net/http"
	"strings"

	"vendor-tracker/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth.
const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"type":    "auth",
		"code":    code,
		"message": message,
	})
}

// RequireAuth accepts a Bearer access token or a logged-in session.
func RequireAuth(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				abortJSON(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header must be Bearer <token>")
				return
			}
			claims, err := tokens.Parse(strings.TrimSpace(raw), AccessToken)
			if err != nil {
				abortJSON(c, http.StatusUnauthorized, "INVALID_TOKEN", "Given token not valid")
				return
			}
			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxRole, claims.Role)
			c.Next()
			return
		}

		sess := sessions.Default(c)
		uid, ok := sess.Get("user_id").(uint)
		if !ok || uid == 0 {
			abortJSON(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided")
			return
		}
		role, _ := sess.Get("role").(string)
		c.Set(ctxUserID, uid)
		c.Set(ctxRole, models.UserRole(role))
		c.Next()
	}
}

func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, _ := c.Get(ctxRole)
		r, _ := role.(models.UserRole)
		if _, ok := roleSet[r]; !ok {
			abortJSON(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, or 0.
func UserID(c *gin.Context) uint {
	v, _ := c.Get(ctxUserID)
	id, _ := v.(uint)
	return id
}
