package notification

import (
	"hris-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
) {
	r.GET("/ws", handler.ServeWs)

	notifications := r.Group("/notifications")
	notifications.Use(auth)
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.List)
		notifications.PUT("/:id/read", middleware.RBACAuthorize(rbacService, "notification", "update"), handler.MarkRead)
	}
}
