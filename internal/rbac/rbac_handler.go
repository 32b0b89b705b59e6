package rbac

import (
	"net/http"

	"hris-dashboard/internal/middleware"
	"hris-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// MyPermissions lists what the caller's role may do, so the dashboard can
// hide actions it would be refused.
func (h *Handler) MyPermissions(c *gin.Context) {
	role := c.GetString(middleware.ContextRole)

	perms, err := h.service.Permissions(role)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, PermissionsResponse{Role: role, Permissions: perms}, nil)
}
