package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// RequireUser resolves the caller's identity. A bearer token is parsed
// with the shared secret; failing that, the X-User-ID / X-User-Role
// headers set by the gateway's auth middleware are trusted as-is.
func RequireUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			claims, err := ValidateJWT(BearerToken(header), secret)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid token",
					"code":  "INVALID_TOKEN",
				})
				c.Abort()
				return
			}
			role := claims.Role
			if role == "" {
				role = RoleUser
			}
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, role)
			c.Next()
			return
		}

		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		role := c.GetHeader("X-User-Role")
		if role == "" {
			role = RoleUser
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireAdmin guards mutation routes. Must run after RequireUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
				"code":  "ADMIN_ONLY",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's id from the gin context.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
