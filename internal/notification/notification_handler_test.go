package notification_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"hris-dashboard/internal/notification"
	"hris-dashboard/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// Validation details use json field names, which gin's validator caches
// per struct on first bind.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	os.Exit(m.Run())
}

func TestNotificationHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(repo *fakeRepo) *gin.Engine {
		h := notification.NewHandler(notification.NewService(repo), notification.NewHub(), nil, nil)
		r := gin.New()
		r.GET("/notifications", h.List)
		r.PUT("/notifications/:id/read", h.MarkRead)
		return r
	}

	t.Run("list rejects an oversized limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(&fakeRepo{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications?limit=1000", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list passes unread flag", func(t *testing.T) {
		repo := &fakeRepo{}
		w := httptest.NewRecorder()
		newRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications?unread=true&limit=3", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, repo.lastUnread)
		assert.Equal(t, 3, repo.lastLimit)
	})

	t.Run("mark read unknown id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/notifications/"+uuid.NewString()+"/read", nil)
		newRouter(&fakeRepo{markErr: gorm.ErrRecordNotFound}).ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
