package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"hris-dashboard/internal/leave"
	leaveerrors "hris-dashboard/internal/leave/errors"
	"hris-dashboard/internal/shared/apperror"
	"hris-dashboard/internal/shared/export"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Validation details use json field names, which gin's validator caches
// per struct on first bind.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	os.Exit(m.Run())
}

type fakeLeaveService struct {
	SubmitFn    func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	SetStatusFn func(ctx context.Context, id, status string) (leave.LeaveResponse, error)
	GetAllFn    func(ctx context.Context, query leave.ListLeavesQuery) ([]leave.LeaveResponse, error)
	GetByIDFn   func(ctx context.Context, id string) (leave.LeaveResponse, error)
	CalendarFn  func(ctx context.Context) ([]leave.CalendarEntry, error)
	DeleteFn    func(ctx context.Context, id string) error
}

func (f *fakeLeaveService) Submit(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.SubmitFn(ctx, req)
}
func (f *fakeLeaveService) SetStatus(ctx context.Context, id, status string) (leave.LeaveResponse, error) {
	return f.SetStatusFn(ctx, id, status)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, query leave.ListLeavesQuery) ([]leave.LeaveResponse, error) {
	return f.GetAllFn(ctx, query)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeLeaveService) Calendar(ctx context.Context) ([]leave.CalendarEntry, error) {
	return f.CalendarFn(ctx)
}
func (f *fakeLeaveService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  *struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
	} `json:"meta"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func setupRouter(svc leave.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := leave.NewHandler(svc)
	r := gin.New()
	r.POST("/leaves", h.Create)
	r.GET("/leaves", h.GetAll)
	r.GET("/leaves/calendar", h.Calendar)
	r.GET("/leaves/export", h.Export)
	r.GET("/leaves/:id", h.GetById)
	r.PUT("/leaves/:id", h.UpdateStatus)
	r.DELETE("/leaves/:id", h.Delete)
	return r
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, "A", req.EmployeeName)
				assert.Equal(t, "Dev", req.Designation)
				return leave.LeaveResponse{ID: uuid.NewString(), EmployeeName: req.EmployeeName, Status: leave.StatusPending}, nil
			},
		}
		body := `{"employee_name":"A","designation":"Dev","date":"10/09/24","reason":"x"}`
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decode(t, w)
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), `"status":"Pending"`)
	})

	t.Run("missing fields carry details", func(t *testing.T) {
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrMissingFields.WithDetails(map[string]string{
					"reason": "reason is required",
				})
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{"employee_name":"A"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		assert.False(t, env.Ok)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.Equal(t, "reason is required", env.Error.Details["reason"])
	})

	t.Run("malformed json never reaches the service", func(t *testing.T) {
		svc := &fakeLeaveService{}
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{"employee_name":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_UpdateStatus(t *testing.T) {
	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			SetStatusFn: func(ctx context.Context, gotID, status string) (leave.LeaveResponse, error) {
				assert.Equal(t, id, gotID)
				assert.Equal(t, "Approved", status)
				return leave.LeaveResponse{ID: gotID, Status: leave.StatusApproved}, nil
			},
		}
		req := httptest.NewRequest(http.MethodPut, "/leaves/"+id, strings.NewReader(`{"status":"Approved"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeLeaveService{
			SetStatusFn: func(ctx context.Context, gotID, status string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}
		req := httptest.NewRequest(http.MethodPut, "/leaves/"+id, strings.NewReader(`{"status":"Rejected"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decode(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("status is required", func(t *testing.T) {
		svc := &fakeLeaveService{}
		req := httptest.NewRequest(http.MethodPut, "/leaves/"+id, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	items := make([]leave.LeaveResponse, 12)
	for i := range items {
		items[i] = leave.LeaveResponse{ID: uuid.NewString(), Status: leave.StatusPending}
	}
	svc := &fakeLeaveService{
		GetAllFn: func(ctx context.Context, query leave.ListLeavesQuery) ([]leave.LeaveResponse, error) {
			assert.Equal(t, "Pending", query.Status)
			return items, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/leaves?status=Pending&page=2", nil)
	w := httptest.NewRecorder()

	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(12), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)
	var page []leave.LeaveResponse
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page, 2)
}

func TestLeaveHandler_Calendar(t *testing.T) {
	svc := &fakeLeaveService{
		CalendarFn: func(ctx context.Context) ([]leave.CalendarEntry, error) {
			return []leave.CalendarEntry{{Date: "10/09/24", EmployeeName: "A", Position: "Dev Staff"}}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/leaves/calendar", nil)
	w := httptest.NewRecorder()

	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.JSONEq(t, `[{"date":"10/09/24","employee":"A","position":"Dev Staff"}]`, string(env.Data))
}

func TestLeaveHandler_Delete(t *testing.T) {
	svc := &fakeLeaveService{
		DeleteFn: func(ctx context.Context, id string) error {
			return leaveerrors.ErrLeaveNotFound
		},
	}
	req := httptest.NewRequest(http.MethodDelete, "/leaves/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()

	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLeaveHandler_Export(t *testing.T) {
	svc := &fakeLeaveService{
		GetAllFn: func(ctx context.Context, query leave.ListLeavesQuery) ([]leave.LeaveResponse, error) {
			return []leave.LeaveResponse{{EmployeeName: "A", Date: "10/09/24", Status: leave.StatusApproved}}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/leaves/export", nil)
	w := httptest.NewRecorder()

	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "leaves-")
	assert.NotZero(t, w.Body.Len())
}
