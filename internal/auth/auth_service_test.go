package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hris-dashboard/internal/auth"
	autherrors "hris-dashboard/internal/auth/errors"
	"hris-dashboard/internal/auth/token"
	"hris-dashboard/internal/shared/apperror"
	"hris-dashboard/internal/user"
	userMock "hris-dashboard/internal/user/mock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type serviceDeps struct {
	service auth.Service
	users   *userMock.MockRepository
	tokens  *token.Manager
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	users := userMock.NewMockRepository(ctrl)
	tokens := token.NewManager("test-secret", time.Hour)
	return &serviceDeps{
		service: auth.NewService(users, tokens),
		users:   users,
		tokens:  tokens,
	}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	stored := &user.User{ID: uuid.New(), Username: "hr.jane", Name: "Jane", Role: user.RoleHR}

	t.Run("success issues a parseable token", func(t *testing.T) {
		deps := setupServiceTest(t)
		stored.Password = hashed(t, "secret123")
		deps.users.EXPECT().FindByUsername(gomock.Any(), "hr.jane").Return(stored, nil)

		session, err := deps.service.Login(ctx, auth.LoginRequest{Username: " HR.Jane ", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "hr", session.User.Role)

		claims, err := deps.tokens.Parse(session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, stored.ID.String(), claims.UserID)
		assert.Equal(t, "hr.jane", claims.Username)
		assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)
	})

	t.Run("wrong password", func(t *testing.T) {
		deps := setupServiceTest(t)
		stored.Password = hashed(t, "secret123")
		deps.users.EXPECT().FindByUsername(gomock.Any(), "hr.jane").Return(stored, nil)

		_, err := deps.service.Login(ctx, auth.LoginRequest{Username: "hr.jane", Password: "nope"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.users.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Login(ctx, auth.LoginRequest{Username: "ghost", Password: "whatever"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("database failure is not masked", func(t *testing.T) {
		deps := setupServiceTest(t)
		boom := errors.New("db down")
		deps.users.EXPECT().FindByUsername(gomock.Any(), "hr.jane").Return(nil, boom)

		_, err := deps.service.Login(ctx, auth.LoginRequest{Username: "hr.jane", Password: "x"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	req := auth.RegisterRequest{Username: "New.User", Password: "secret123", Name: " New User "}

	t.Run("creates an employee and signs in", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.users.EXPECT().FindByUsername(gomock.Any(), "new.user").Return(nil, gorm.ErrRecordNotFound)
		deps.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.Equal(t, "new.user", u.Username)
			assert.Equal(t, "New User", u.Name)
			assert.Equal(t, user.RoleEmployee, u.Role)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))
			u.ID = uuid.New()
			return nil
		})

		session, err := deps.service.Register(ctx, req)
		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
		assert.Equal(t, "employee", session.User.Role)
	})

	t.Run("taken username", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.users.EXPECT().FindByUsername(gomock.Any(), "new.user").
			Return(&user.User{ID: uuid.New(), Username: "new.user"}, nil)

		_, err := deps.service.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrUsernameTaken)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.HTTPStatus)
	})

	t.Run("username of a deleted account is free again", func(t *testing.T) {
		deps := setupServiceTest(t)
		// soft-deleted rows are invisible to the lookup and to the partial index
		deps.users.EXPECT().FindByUsername(gomock.Any(), "new.user").Return(nil, gorm.ErrRecordNotFound)
		deps.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			u.ID = uuid.New()
			return nil
		})

		session, err := deps.service.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "new.user", session.User.Username)
	})

	t.Run("concurrent insert hits the unique index", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.users.EXPECT().FindByUsername(gomock.Any(), "new.user").Return(nil, gorm.ErrRecordNotFound)
		deps.users.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: user.UsernameConstraint})

		_, err := deps.service.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrUsernameTaken)
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		deps.users.EXPECT().FindByID(gomock.Any(), id.String()).
			Return(&user.User{ID: id, Username: "bob", Role: "employee"}, nil)

		resp, err := deps.service.Me(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, "bob", resp.Username)
	})

	t.Run("deleted account", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.users.EXPECT().FindByID(gomock.Any(), "gone").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Me(ctx, "gone")
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
