package candidate

import (
	"net/http"

	"hris-dashboard/internal/shared/apperror"
	"hris-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("candidate.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("candidate.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) fail(c *gin.Context, err error) {
	httpErr := response.FromError(c, err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("candidate request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
}

// Create godoc
// @Summary Add a candidate
// @Tags candidates
// @Accept json
// @Produce json
// @Param body body CreateCandidateRequest true "candidate"
// @Success 201 {object} response.ApiEnvelope
// @Failure 409 {object} response.ApiEnvelope
// @Router /candidates [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.MapValidationError(err))
		return
	}
	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll godoc
// @Summary List candidates
// @Tags candidates
// @Produce json
// @Param name query string false "name contains"
// @Param email query string false "email contains"
// @Param status query string false "Pending, Screening, Interview, Selected, Rejected or Hired"
// @Success 200 {object} response.ApiEnvelope
// @Router /candidates [get]
func (h *Handler) GetAll(c *gin.Context) {
	var q ListCandidatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(c, apperror.MapValidationError(err))
		return
	}
	resp, err := h.service.GetAll(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Paginate(c, http.StatusOK, resp)
}

// GetById godoc
// @Summary Get one candidate
// @Tags candidates
// @Produce json
// @Param id path string true "candidate id"
// @Success 200 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /candidates/{id} [get]
func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Update godoc
// @Summary Partially update a candidate
// @Tags candidates
// @Accept json
// @Produce json
// @Param id path string true "candidate id"
// @Param body body UpdateCandidateRequest true "fields to change"
// @Success 200 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /candidates/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.MapValidationError(err))
		return
	}
	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Delete godoc
// @Summary Delete a candidate
// @Tags candidates
// @Produce json
// @Param id path string true "candidate id"
// @Success 200 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /candidates/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
