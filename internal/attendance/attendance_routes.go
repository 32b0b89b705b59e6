package attendance

import (
	"hris-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	attendances := r.Group("/attendances")
	attendances.Use(auth)
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetAll)
		attendances.GET("/export", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.Export)
		attendances.GET("/:id", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetById)
		attendances.POST("", middleware.RBACAuthorize(rbacService, "attendance", "create"), handler.Create)
		attendances.PUT("/:id", middleware.RBACAuthorize(rbacService, "attendance", "update"), handler.Update)
		attendances.PUT("/:id/status", middleware.RBACAuthorize(rbacService, "attendance", "update"), handler.UpdateStatus)
		attendances.DELETE("/:id", middleware.RBACAuthorize(rbacService, "attendance", "delete"), handler.Delete)
	}
}
