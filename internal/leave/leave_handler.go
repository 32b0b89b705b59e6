package leave

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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.FromError(c, err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
}

// Create godoc
// @Summary Submit a leave request
// @Tags leaves
// @Accept json
// @Produce json
// @Param body body CreateLeaveRequest true "leave request"
// @Success 201 {object} response.ApiEnvelope
// @Failure 400 {object} response.ApiEnvelope
// @Router /leaves [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit leave bind failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll godoc
// @Summary List leave requests
// @Tags leaves
// @Produce json
// @Param status query string false "Pending, Approved or Rejected"
// @Param q query string false "search employee name and reason"
// @Param page query int false "page (default 1)"
// @Param page_size query int false "page size (default 10)"
// @Success 200 {object} response.ApiEnvelope
// @Router /leaves [get]
func (h *Handler) GetAll(c *gin.Context) {
	var q ListLeavesQuery
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
// @Summary Get one leave request
// @Tags leaves
// @Produce json
// @Param id path string true "leave id"
// @Success 200 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /leaves/{id} [get]
func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// UpdateStatus godoc
// @Summary Set a leave's status
// @Description Approved leaves appear on the calendar; any other status removes the entry.
// @Tags leaves
// @Accept json
// @Produce json
// @Param id path string true "leave id"
// @Param body body UpdateLeaveStatusRequest true "new status"
// @Success 200 {object} response.ApiEnvelope
// @Failure 400 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /leaves/{id} [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http set leave status bind failed", zap.Error(err))
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

// Calendar godoc
// @Summary Approved leave calendar
// @Tags leaves
// @Produce json
// @Success 200 {object} response.ApiEnvelope
// @Router /leaves/calendar [get]
func (h *Handler) Calendar(c *gin.Context) {
	entries, err := h.service.Calendar(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, entries, nil)
}

// Delete godoc
// @Summary Delete a leave request
// @Tags leaves
// @Produce json
// @Param id path string true "leave id"
// @Success 200 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /leaves/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// Export godoc
// @Summary Export leave requests as xlsx
// @Tags leaves
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "Pending, Approved or Rejected"
// @Param q query string false "search employee name and reason"
// @Success 200 {file} file
// @Router /leaves/export [get]
func (h *Handler) Export(c *gin.Context) {
	var q ListLeavesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	leaves, err := h.service.GetAll(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	rows := make([]map[string]string, len(leaves))
	for i, l := range leaves {
		document := ""
		if l.Document != nil {
			document = *l.Document
		}
		rows[i] = map[string]string{
			"employee_name": l.EmployeeName,
			"position":      l.Position,
			"department":    l.Department,
			"date":          l.Date,
			"reason":        l.Reason,
			"status":        l.Status.String(),
			"document":      document,
		}
	}

	filename := "leaves-" + time.Now().UTC().Format("20060102") + ".xlsx"
	if err := export.Attach(c, filename, export.Sheet{
		Name: "Leaves",
		Columns: []export.Column{
			{Field: "employee_name", Title: "Name", Width: 2.5},
			{Field: "position", Title: "Position", Width: 1.5},
			{Field: "department", Title: "Department", Width: 1.5},
			{Field: "date", Title: "Date", Width: 1.2},
			{Field: "reason", Title: "Reason", Width: 3},
			{Field: "status", Title: "Status", Width: 1.2},
			{Field: "document", Title: "Document", Width: 2},
		},
		Rows: rows,
	}); err != nil {
		h.logger.Error("leave export failed", zap.Error(err))
		_ = c.Error(err)
	}
}
