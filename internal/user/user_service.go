package user

import (
	"context"
	"strings"
	"time"

	"hris-dashboard/internal/shared/connection"
	usererrors "hris-dashboard/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoleChecker reports whether a role exists in the loaded authorization
// policy.
type RoleChecker interface {
	HasRole(role string) bool
}

type Service interface {
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}

type service struct {
	repo   Repository
	roles  RoleChecker
	logger *zap.Logger
}

func NewService(repo Repository, roles RoleChecker, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, roles: roles, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, err
	}
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = MapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return MapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*req.Role))
		if !s.validRole(role) {
			return UserResponse{}, usererrors.ErrInvalidRole.WithDetails(map[string]string{
				"role": "unknown role " + role,
			})
		}
		u.Role = role
	}

	if err := s.repo.Update(ctx, u); err != nil {
		if connection.IsNotFound(err) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		s.logger.Error("update user failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("update user success", zap.String("user_id", id), zap.String("role", u.Role))
	return MapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return usererrors.ErrCannotDeleteSelf
	}
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrUserNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if connection.IsNotFound(err) {
			return usererrors.ErrUserNotFound
		}
		return err
	}
	s.logger.Info("delete user success", zap.String("user_id", id), zap.String("actor_id", actorID))
	return nil
}

func (s *service) find(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrUserNotFound
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if connection.IsNotFound(err) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) validRole(role string) bool {
	if s.roles != nil {
		return s.roles.HasRole(role)
	}
	switch role {
	case RoleAdmin, RoleHR, RoleManager, RoleEmployee:
		return true
	}
	return false
}

func MapToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
