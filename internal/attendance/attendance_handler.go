package attendance

import (
	"net/http"
	"time"

	"hris-dashboard/internal/shared/apperror"
	"hris-dashboard/internal/shared/export"
	"hris-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.FromError(c, err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
}

// Create godoc
// @Summary Create an attendance record
// @Tags attendances
// @Accept json
// @Produce json
// @Param body body CreateAttendanceRequest true "attendance record"
// @Success 201 {object} response.ApiEnvelope
// @Failure 400 {object} response.ApiEnvelope
// @Router /attendances [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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
// @Summary List attendance records
// @Tags attendances
// @Produce json
// @Param status query string false "Present or Absent"
// @Param q query string false "search name, department and task"
// @Param page query int false "page (default 1)"
// @Param page_size query int false "page size (default 10)"
// @Success 200 {object} response.ApiEnvelope
// @Router /attendances [get]
func (h *Handler) GetAll(c *gin.Context) {
	var q ListAttendancesQuery
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

// GetById godoc
// @Summary Get one attendance record
// @Tags attendances
// @Produce json
// @Param id path string true "attendance id"
// @Success 200 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /attendances/{id} [get]
func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Update godoc
// @Summary Partially update an attendance record
// @Tags attendances
// @Accept json
// @Produce json
// @Param id path string true "attendance id"
// @Param body body UpdateAttendanceRequest true "fields to change"
// @Success 200 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /attendances/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// UpdateStatus godoc
// @Summary Mark an attendance record Present or Absent
// @Tags attendances
// @Accept json
// @Produce json
// @Param id path string true "attendance id"
// @Param body body UpdateAttendanceStatusRequest true "new status"
// @Success 200 {object} response.ApiEnvelope
// @Failure 400 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /attendances/{id}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateAttendanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Delete godoc
// @Summary Delete an attendance record
// @Tags attendances
// @Produce json
// @Param id path string true "attendance id"
// @Success 200 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /attendances/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// Export godoc
// @Summary Export attendance records as xlsx
// @Tags attendances
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "Present or Absent"
// @Param q query string false "search name, department and task"
// @Success 200 {file} file
// @Router /attendances/export [get]
func (h *Handler) Export(c *gin.Context) {
	var q ListAttendancesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	rows, err := h.service.GetAll(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	data := make([]map[string]string, len(rows))
	for i, a := range rows {
		data[i] = map[string]string{
			"name":       a.Name,
			"position":   a.Position,
			"department": a.Department,
			"task":       a.Task,
			"date":       a.Date,
			"status":     a.Status.String(),
		}
	}

	filename := "attendances-" + time.Now().UTC().Format("20060102") + ".xlsx"
	if err := export.Attach(c, filename, export.Sheet{
		Name: "Attendance",
		Columns: []export.Column{
			{Field: "name", Title: "Name", Width: 2.5},
			{Field: "position", Title: "Position", Width: 1.5},
			{Field: "department", Title: "Department", Width: 1.5},
			{Field: "task", Title: "Task", Width: 3},
			{Field: "date", Title: "Date", Width: 1.2},
			{Field: "status", Title: "Status", Width: 1.2},
		},
		Rows: data,
	}); err != nil {
		h.logger.Error("attendance export failed", zap.Error(err))
		_ = c.Error(err)
	}
}
