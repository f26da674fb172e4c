package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// wildcard permission codes grant everything on a resource or globally
const (
	permissionAll         = "*:*"
	permissionActionAll   = "*"
	permissionCodeSep     = ":"
	permissionDeniedCode  = "FORBIDDEN"
	permissionDeniedError = "Insufficient permissions"
)

// RequirePermission returns middleware that rejects requests whose JWT does
// not carry the given permission code ("resource:action")
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HasPermission(c, permission) {
			handlePermissionDenied(c)
			return
		}
		c.Next()
	}
}

// RequireAnyPermission returns middleware that passes when the JWT carries
// at least one of the given permission codes
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, permission := range permissions {
			if HasPermission(c, permission) {
				c.Next()
				return
			}
		}
		handlePermissionDenied(c)
	}
}

// HasPermission reports whether the authenticated user holds the permission
// code, directly or through a wildcard grant
func HasPermission(c *gin.Context, permission string) bool {
	granted := GetJWTPermissions(c)
	if len(granted) == 0 {
		return false
	}

	resource := permission
	if i := strings.Index(permission, permissionCodeSep); i >= 0 {
		resource = permission[:i]
	}
	resourceWildcard := resource + permissionCodeSep + permissionActionAll

	for _, have := range granted {
		if have == permission || have == permissionAll || have == resourceWildcard {
			return true
		}
	}
	return false
}

func handlePermissionDenied(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    permissionDeniedCode,
			"message": permissionDeniedError,
		},
	})
}
