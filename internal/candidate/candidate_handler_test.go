package candidate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"hris-dashboard/internal/candidate"
	candidateerrors "hris-dashboard/internal/candidate/errors"
	"hris-dashboard/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Validation details use json field names, which gin's validator caches
// per struct on first bind.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	os.Exit(m.Run())
}

type stubService struct {
	candidate.Service
	create func(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.CandidateResponse, error)
}

func (s stubService) Create(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.CandidateResponse, error) {
	return s.create(ctx, req)
}

func TestCandidateHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"created", `{"name":"Ann","email":"ann@example.com","status":"Screening"}`, nil, http.StatusCreated},
		{"unknown status", `{"name":"Ann","email":"ann@example.com","status":"Ghosted"}`, nil, http.StatusBadRequest},
		{"duplicate email", `{"name":"Ann","email":"ann@example.com"}`, candidateerrors.ErrCandidateAlreadyExists, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := candidate.NewHandler(stubService{
				create: func(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.CandidateResponse, error) {
					if tc.err != nil {
						return candidate.CandidateResponse{}, tc.err
					}
					return candidate.CandidateResponse{Name: req.Name, Status: req.Status}, nil
				},
			})
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/candidates", strings.NewReader(tc.body))
			c.Request.Header.Set("Content-Type", "application/json")

			h.Create(c)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}
