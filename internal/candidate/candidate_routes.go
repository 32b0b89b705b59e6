package candidate

import (
	"hris-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	candidates := r.Group("/candidates")
	candidates.Use(auth)
	{
		candidates.GET("", middleware.RBACAuthorize(rbacService, "candidate", "read"), handler.GetAll)
		candidates.GET("/:id", middleware.RBACAuthorize(rbacService, "candidate", "read"), handler.GetById)
		candidates.POST("", middleware.RBACAuthorize(rbacService, "candidate", "create"), handler.Create)
		candidates.PUT("/:id", middleware.RBACAuthorize(rbacService, "candidate", "update"), handler.Update)
		candidates.DELETE("/:id", middleware.RBACAuthorize(rbacService, "candidate", "delete"), handler.Delete)
	}
}
