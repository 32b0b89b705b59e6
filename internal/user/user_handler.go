package user

import (
	"net/http"

	"hris-dashboard/internal/shared/apperror"
	"hris-dashboard/internal/shared/contextutil"
	"hris-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{svc: service, logger: l}
}

// GetAll godoc
// @Summary List login accounts
// @Tags users
// @Produce json
// @Success 200 {object} response.ApiEnvelope
// @Router /users [get]
func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginate(c, http.StatusOK, resp)
}

// GetById godoc
// @Summary Get one login account
// @Tags users
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /users/{id} [get]
func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Update godoc
// @Summary Change a user's name or role
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Param body body UpdateUserRequest true "changes"
// @Success 200 {object} response.ApiEnvelope
// @Router /users/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Delete godoc
// @Summary Remove a login account
// @Tags users
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} response.ApiEnvelope
// @Router /users/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := contextutil.GetUserID(ctx)
	id := c.Param("id")

	if err := h.svc.Delete(ctx, actorID, id); err != nil {
		response.FromError(c, err)
		return
	}
	h.logger.Info("http delete user", zap.String("user_id", id), zap.String("actor_id", actorID))
	response.Success(c, http.StatusOK, gin.H{"id": id}, nil)
}
