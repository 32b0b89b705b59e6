package notification

import (
	"context"
	"time"

	"hris-dashboard/internal/events"
	notificationerrors "hris-dashboard/internal/notification/errors"
	"hris-dashboard/internal/shared/connection"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type Service interface {
	List(ctx context.Context, limit int, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, id string) error
	// RecordLeaveStatusChanged stores the inbox row for eventID. Replays of
	// the same eventID are accepted and store nothing.
	RecordLeaveStatusChanged(ctx context.Context, eventID string, e events.LeaveStatusChangedEvent) (bool, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func (s *service) List(ctx context.Context, limit int, unreadOnly bool) ([]NotificationResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	rows, err := s.repo.FindRecent(ctx, limit, unreadOnly)
	if err != nil {
		s.logger.Error("list notifications failed", zap.Error(err))
		return nil, err
	}

	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrNotificationNotFound
	}
	if err := s.repo.MarkRead(ctx, id, s.now().UTC()); err != nil {
		if connection.IsNotFound(err) {
			return notificationerrors.ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *service) RecordLeaveStatusChanged(ctx context.Context, eventID string, e events.LeaveStatusChangedEvent) (bool, error) {
	msg := LeaveStatusMessage(e)
	n := &Notification{
		ID:           uuid.New(),
		EventID:      eventID,
		Type:         msg.Type,
		Title:        msg.Title,
		Message:      msg.Message,
		EmployeeName: msg.EmployeeName,
		Status:       msg.Status,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		if connection.IsUniqueViolation(err, "uq_notifications_event_id") {
			s.logger.Debug("notification already recorded", zap.String("event_id", eventID))
			return false, nil
		}
		s.logger.Error("record notification failed", zap.String("event_id", eventID), zap.Error(err))
		return false, err
	}

	s.logger.Info("notification recorded",
		zap.String("event_id", eventID),
		zap.String("leave_id", e.LeaveID),
		zap.String("status", e.Status),
	)
	return true, nil
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:           n.ID.String(),
		Type:         n.Type,
		Title:        n.Title,
		Message:      n.Message,
		EmployeeName: n.EmployeeName,
		Status:       n.Status,
		Read:         n.ReadAt != nil,
		CreatedAt:    n.CreatedAt.Format(time.RFC3339),
	}
	return resp
}
