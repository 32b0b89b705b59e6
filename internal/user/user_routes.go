package user

import (
	"hris-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	users := r.Group("/users")
	users.Use(auth)
	{
		users.GET("", middleware.RBACAuthorize(rbacService, "user", "read"), handler.GetAll)
		users.GET("/:id", middleware.RBACAuthorize(rbacService, "user", "read"), handler.GetById)
		users.PUT("/:id", middleware.RBACAuthorize(rbacService, "user", "update"), handler.Update)
		users.DELETE("/:id", middleware.RBACAuthorize(rbacService, "user", "delete"), handler.Delete)
	}
}
