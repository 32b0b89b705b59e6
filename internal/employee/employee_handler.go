package employee

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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.FromError(c, err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
}

// Create godoc
// @Summary Create an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param body body CreateEmployeeRequest true "employee"
// @Success 201 {object} response.ApiEnvelope
// @Failure 400 {object} response.ApiEnvelope
// @Failure 409 {object} response.ApiEnvelope
// @Router /employees [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Param q query string false "search name, email and department"
// @Param department query string false "exact department"
// @Param status query string false "active, on-leave or terminated"
// @Param sort_by query string false "name, email, department or joining_date"
// @Param sort_dir query string false "asc or desc"
// @Param page query int false "page (default 1)"
// @Param page_size query int false "page size (default 10)"
// @Success 200 {object} response.ApiEnvelope
// @Router /employees [get]
func (h *Handler) GetAll(c *gin.Context) {
	var q ListEmployeesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Paginate(c, http.StatusOK, resp)
}

// GetOptions godoc
// @Summary Employee id and name list
// @Tags employees
// @Produce json
// @Success 200 {object} response.ApiEnvelope
// @Router /employees/options [get]
func (h *Handler) GetOptions(c *gin.Context) {
	resp, err := h.service.GetOptions(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetById godoc
// @Summary Get one employee
// @Tags employees
// @Produce json
// @Param id path string true "employee id"
// @Success 200 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /employees/{id} [get]
func (h *Handler) GetById(c *gin.Context) {
	targetID := c.Param("id")
	h.logger.Debug("http get employee by id", zap.String("employee_id", targetID))

	resp, err := h.service.GetByID(c.Request.Context(), targetID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Update godoc
// @Summary Partially update an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "employee id"
// @Param body body UpdateEmployeeRequest true "fields to change"
// @Success 200 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Failure 409 {object} response.ApiEnvelope
// @Router /employees/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Delete godoc
// @Summary Delete an employee
// @Tags employees
// @Produce json
// @Param id path string true "employee id"
// @Success 200 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /employees/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
