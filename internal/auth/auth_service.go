package auth

import (
	"context"
	"strings"

	autherrors "hris-dashboard/internal/auth/errors"
	"hris-dashboard/internal/auth/token"
	"hris-dashboard/internal/shared/connection"
	"hris-dashboard/internal/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (Session, error)
	Register(ctx context.Context, req RegisterRequest) (Session, error)
	Me(ctx context.Context, userID string) (AuthResponse, error)
}

type service struct {
	users  user.Repository
	tokens *token.Manager
	logger *zap.Logger
}

func NewService(users user.Repository, tokens *token.Manager, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, tokens: tokens, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (Session, error) {
	username := normalizeUsername(req.Username)

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if connection.IsNotFound(err) {
			s.logger.Info("login rejected", zap.String("username", username), zap.String("reason", "unknown user"))
			return Session{}, autherrors.ErrInvalidCredentials
		}
		return Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		s.logger.Info("login rejected", zap.String("username", username), zap.String("reason", "password mismatch"))
		return Session{}, autherrors.ErrInvalidCredentials
	}

	return s.issue(u)
}

// Register creates an employee-role account and signs it in.
func (s *service) Register(ctx context.Context, req RegisterRequest) (Session, error) {
	username := normalizeUsername(req.Username)

	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return Session{}, autherrors.ErrUsernameTaken
	}
	if err != nil && !connection.IsNotFound(err) {
		return Session{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, err
	}

	u := &user.User{
		Username: username,
		Password: string(hashed),
		Name:     strings.TrimSpace(req.Name),
		Role:     user.RoleEmployee,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if connection.IsUniqueViolation(err, user.UsernameConstraint) {
			return Session{}, autherrors.ErrUsernameTaken
		}
		s.logger.Error("create user failed", zap.String("username", username), zap.Error(err))
		return Session{}, err
	}

	s.logger.Info("user registered", zap.String("user_id", u.ID.String()), zap.String("username", username))
	return s.issue(u)
}

func (s *service) Me(ctx context.Context, userID string) (AuthResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if connection.IsNotFound(err) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}
	return toResponse(u), nil
}

func (s *service) issue(u *user.User) (Session, error) {
	signed, expiresAt, err := s.tokens.Issue(u.ID.String(), u.Username, u.Role)
	if err != nil {
		s.logger.Error("issue token failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return Session{}, autherrors.ErrTokenGenerationFailed
	}
	return Session{AccessToken: signed, ExpiresAt: expiresAt, User: toResponse(u)}, nil
}

func toResponse(u *user.User) AuthResponse {
	return AuthResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
