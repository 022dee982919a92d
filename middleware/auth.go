package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stanislausjustin/user-service/models"
	"github.com/stanislausjustin/user-service/utils"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUserID = "userID"
	CtxRoles  = "roles"
)

// Auth validates the token in the Authorization header and stores the
// caller's id and roles in the Gin context. The header may carry either
// the raw token or the "Bearer <token>" form.
func Auth(tm *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
			c.Abort()
			return
		}

		tokenStr := header
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			tokenStr = parts[1]
		}

		claims, err := tm.VerifyAccessToken(tokenStr)
		if err != nil {
			// expired and malformed tokens get the same outward answer
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid token."})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRoles, claims.Roles)

		c.Next()
	}
}

// RequireAdmin rejects callers whose role set does not contain RoleAdmin.
// Must run after Auth; without it there is no identity to check.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rolesIf, exists := c.Get(CtxRoles)
		roles, ok := rolesIf.([]models.Role)
		if !exists || !ok || !models.HasAdmin(roles) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. You do not have admin privileges."})
			c.Abort()
			return
		}
		c.Next()
	}
}
