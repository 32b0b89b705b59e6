package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"hris-dashboard/internal/attendance"
	attendanceerrors "hris-dashboard/internal/attendance/errors"
	"hris-dashboard/internal/shared/apperror"
	"hris-dashboard/internal/shared/export"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Validation details use json field names, which gin's validator caches
// per struct on first bind.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	os.Exit(m.Run())
}

type fakeAttendanceService struct {
	CreateFn    func(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error)
	GetAllFn    func(ctx context.Context, q attendance.ListAttendancesQuery) ([]attendance.AttendanceResponse, error)
	GetByIDFn   func(ctx context.Context, id string) (attendance.AttendanceResponse, error)
	UpdateFn    func(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error)
	SetStatusFn func(ctx context.Context, id, status string) (attendance.AttendanceResponse, error)
	DeleteFn    func(ctx context.Context, id string) error
}

func (f *fakeAttendanceService) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeAttendanceService) GetAll(ctx context.Context, q attendance.ListAttendancesQuery) ([]attendance.AttendanceResponse, error) {
	return f.GetAllFn(ctx, q)
}
func (f *fakeAttendanceService) GetByID(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeAttendanceService) Update(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeAttendanceService) SetStatus(ctx context.Context, id, status string) (attendance.AttendanceResponse, error) {
	return f.SetStatusFn(ctx, id, status)
}
func (f *fakeAttendanceService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func setupRouter(svc attendance.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := attendance.NewHandler(svc)
	r := gin.New()
	r.GET("/attendances", h.GetAll)
	r.GET("/attendances/export", h.Export)
	r.POST("/attendances", h.Create)
	r.PUT("/attendances/:id/status", h.UpdateStatus)
	return r
}

func TestAttendanceHandler_UpdateStatus(t *testing.T) {
	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeAttendanceService{
			SetStatusFn: func(ctx context.Context, gotID, status string) (attendance.AttendanceResponse, error) {
				assert.Equal(t, id, gotID)
				assert.Equal(t, "Absent", status)
				return attendance.AttendanceResponse{ID: gotID, Status: attendance.StatusAbsent}, nil
			},
		}
		req := httptest.NewRequest(http.MethodPut, "/attendances/"+id+"/status", strings.NewReader(`{"status":"Absent"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"Absent"`)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeAttendanceService{
			SetStatusFn: func(ctx context.Context, gotID, status string) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
			},
		}
		req := httptest.NewRequest(http.MethodPut, "/attendances/"+id+"/status", strings.NewReader(`{"status":"Present"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})
}

func TestAttendanceHandler_Create(t *testing.T) {
	t.Run("invalid status rejected by binding", func(t *testing.T) {
		svc := &fakeAttendanceService{}
		req := httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(`{"name":"A","status":"Late"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeAttendanceService{
			CreateFn: func(ctx context.Context, r attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{ID: uuid.NewString(), Name: r.Name, Status: attendance.StatusPresent}, nil
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(`{"name":"A"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestAttendanceHandler_Export(t *testing.T) {
	svc := &fakeAttendanceService{
		GetAllFn: func(ctx context.Context, q attendance.ListAttendancesQuery) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, "Present", q.Status)
			return []attendance.AttendanceResponse{{Name: "A", Status: attendance.StatusPresent}}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/attendances/export?status=Present", nil)
	w := httptest.NewRecorder()

	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))
}
