package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hris-dashboard/internal/app"
	"hris-dashboard/internal/bootstrap"
	"hris-dashboard/internal/config"
	"hris-dashboard/internal/user"
	userMock "hris-dashboard/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type recordingAudit struct {
	entries []bootstrap.AuditLog
}

func (r *recordingAudit) Log(_ context.Context, entry bootstrap.AuditLog) {
	r.entries = append(r.entries, entry)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	seed := config.SeedConfig{AdminUsername: " Admin ", AdminPassword: "change-me"}

	t.Run("creates the admin once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		audit := &recordingAudit{}

		users.EXPECT().FindByUsername(gomock.Any(), "admin").Return(nil, gorm.ErrRecordNotFound)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.Equal(t, user.RoleAdmin, u.Role)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("change-me")))
			return nil
		})

		seeded, err := app.SeedAdmin(ctx, users, seed, audit)
		require.NoError(t, err)
		assert.True(t, seeded)
		require.Len(t, audit.entries, 1)
		assert.Equal(t, "ADMIN_SEEDED", audit.entries[0].Action)
	})

	t.Run("existing account is left alone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		users.EXPECT().FindByUsername(gomock.Any(), "admin").Return(&user.User{ID: uuid.New()}, nil)

		seeded, err := app.SeedAdmin(ctx, users, seed, &recordingAudit{})
		require.NoError(t, err)
		assert.False(t, seeded)
	})

	t.Run("disabled without credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)

		seeded, err := app.SeedAdmin(ctx, users, config.SeedConfig{}, &recordingAudit{})
		require.NoError(t, err)
		assert.False(t, seeded)
	})

	t.Run("lookup failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		boom := errors.New("db down")
		users.EXPECT().FindByUsername(gomock.Any(), "admin").Return(nil, boom)

		_, err := app.SeedAdmin(ctx, users, seed, &recordingAudit{})
		assert.ErrorIs(t, err, boom)
	})
}

func TestNewRouter(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.CORS.AllowOrigins = []string{"http://localhost:5173"}

	r := app.NewRouter(cfg, zap.NewNop())

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("cors preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/health", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "GET")
		r.ServeHTTP(w, req)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})
}
