package middleware

import (
	"github.com/Nirjala-pagare/Emp-management/internal/rbac"
	"github.com/Nirjala-pagare/Emp-management/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// RBACAuthorize gates a route on a resource/action pair for the role the
// auth middleware resolved.
func RBACAuthorize(service rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			abortWithAppError(c, apperror.ErrUnauthorized, nil)
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			abortWithAppError(c, apperror.ErrInternal, nil)
			return
		}

		if !allowed {
			abortWithAppError(c, apperror.ErrForbidden, gin.H{"required": resource + ":" + action})
			return
		}
		c.Next()
	}
}
