package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"hris-dashboard/internal/shared/apperror"
	"hris-dashboard/internal/shared/contextutil"
	"hris-dashboard/internal/user"
	usererrors "hris-dashboard/internal/user/errors"

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

type fakeUserService struct {
	user.Service
	DeleteFn func(ctx context.Context, actorID, id string) error
	GetAllFn func(ctx context.Context) ([]user.UserResponse, error)
}

func (f *fakeUserService) Delete(ctx context.Context, actorID, id string) error {
	return f.DeleteFn(ctx, actorID, id)
}

func (f *fakeUserService) GetAll(ctx context.Context) ([]user.UserResponse, error) {
	return f.GetAllFn(ctx)
}

func asActor(actorID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), actorID))
		c.Next()
	}
}

func TestUserHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	actor := uuid.NewString()

	t.Run("passes the caller as actor", func(t *testing.T) {
		target := uuid.NewString()
		svc := &fakeUserService{DeleteFn: func(_ context.Context, actorID, id string) error {
			assert.Equal(t, actor, actorID)
			assert.Equal(t, target, id)
			return nil
		}}
		r := gin.New()
		r.DELETE("/users/:id", asActor(actor), user.NewHandler(svc).Delete)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/"+target, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("self delete is rejected", func(t *testing.T) {
		svc := &fakeUserService{DeleteFn: func(context.Context, string, string) error {
			return usererrors.ErrCannotDeleteSelf
		}}
		r := gin.New()
		r.DELETE("/users/:id", asActor(actor), user.NewHandler(svc).Delete)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/"+actor, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			OK    bool `json:"ok"`
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.OK)
		assert.Equal(t, "INVALID_STATE", body.Error.Code)
	})
}

func TestUserHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeUserService{GetAllFn: func(context.Context) ([]user.UserResponse, error) {
		return []user.UserResponse{{Username: "alice"}, {Username: "bob"}}, nil
	}}
	r := gin.New()
	r.GET("/users", user.NewHandler(svc).GetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.Contains(t, w.Body.String(), `"alice"`)
}
