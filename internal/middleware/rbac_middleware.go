package middleware

import (
	autherrors "hris-dashboard/internal/auth/errors"
	"hris-dashboard/internal/shared/apperror"
	"hris-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			response.FromError(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}
		if !allowed {
			forbidden := autherrors.ErrForbidden.WithDetails(map[string]string{
				"required": resource + ":" + action,
			})
			response.FromError(c, forbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
