package leave

import (
	"time"

	"hris-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(auth)
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/calendar", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.Calendar)
		leaves.GET("/export", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.Export)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		leaves.POST("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb, 24*time.Hour),
			handler.Create,
		)
		leaves.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.UpdateStatus)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), handler.Delete)
	}
}
