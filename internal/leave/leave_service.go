package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hris-dashboard/internal/events"
	leaveerrors "hris-dashboard/internal/leave/errors"
	"hris-dashboard/internal/messaging/kafka"
	"hris-dashboard/internal/notification"
	"hris-dashboard/internal/shared/cache"
	"hris-dashboard/internal/shared/connection"
	"hris-dashboard/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	CalendarCacheKey = "leaves:calendar"
	calendarCacheTTL = 5 * time.Minute
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	SetStatus(ctx context.Context, id string, status string) (LeaveResponse, error)
	GetAll(ctx context.Context, query ListLeavesQuery) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Calendar(ctx context.Context) ([]CalendarEntry, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	notifier notification.Notifier
	rdb      *redis.Client
	sf       *singleflight.Group
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, nil, rdb, logger...)
}

// NewServiceWithOutbox wires the status-change event: outbox may be nil
// (no durable event) and so may notifier (no live push).
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	notifier notification.Notifier,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outbox,
		notifier: notifier,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) Submit(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	missing := map[string]string{}
	for field, value := range map[string]string{
		"employee_name": req.EmployeeName,
		"designation":   req.Designation,
		"date":          req.Date,
		"reason":        req.Reason,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = field + " is required"
		}
	}
	if len(missing) > 0 {
		s.logger.Warn("submit leave validation failed",
			zap.String("request_id", rid),
			zap.Int("missing", len(missing)),
		)
		return LeaveResponse{}, leaveerrors.ErrMissingFields.WithDetails(missing)
	}

	var employeeID *uuid.UUID
	if req.EmployeeID != "" {
		id, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
		}
		employeeID = &id
	}

	position, department := SplitDesignation(req.Designation)
	l := &Leave{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		EmployeeName: strings.TrimSpace(req.EmployeeName),
		Position:     position,
		Department:   department,
		Date:         strings.TrimSpace(req.Date),
		Reason:       strings.TrimSpace(req.Reason),
		Status:       StatusPending,
		Document:     req.Document,
		Profile:      req.Profile,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_name", l.EmployeeName),
		zap.String("date", l.Date),
	)
	return mapToResponse(*l), nil
}

// SetStatus overwrites the stored status unconditionally. The status row and
// its outbox event commit together; the live push and calendar invalidation
// happen after commit and never fail the call.
func (s *service) SetStatus(ctx context.Context, id string, status string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	target, ok := ParseStatus(status)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus.WithDetails(map[string]string{
			"status": leaveerrors.ErrInvalidStatus.Message,
		})
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	s.logger.Debug("set leave status requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("target_status", target.String()),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if connection.IsNotFound(err) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("set leave status load failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	previous := l.Status

	if err := qtx.UpdateStatus(ctx, id, target); err != nil {
		if connection.IsNotFound(err) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("set leave status persist failed",
			zap.String("leave_id", id),
			zap.String("target_status", target.String()),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	l.Status = target
	l.UpdatedAt = s.now().UTC()

	event := events.LeaveStatusChangedEvent{
		EventType:    events.LeaveStatusChangedType,
		RequestID:    rid,
		LeaveID:      id,
		EmployeeName: l.EmployeeName,
		Date:         l.Date,
		Status:       target.String(),
		OccurredAt:   s.now().UTC(),
	}
	if s.outbox != nil {
		outboxEvent, err := kafka.NewOutboxEvent(rid, "leave", id, event.EventType, events.LeaveStatusChangedTopic, event)
		if err != nil {
			return LeaveResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			s.logger.Error("set leave status outbox persist failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set leave status commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.Push(ctx, notification.LeaveStatusMessage(event)); err != nil {
			s.logger.Warn("leave status push failed", zap.String("leave_id", id), zap.Error(err))
		}
	}
	s.invalidateCalendar(ctx)

	s.logger.Info("set leave status success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("from_status", previous.String()),
		zap.String("status", target.String()),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, query ListLeavesQuery) ([]LeaveResponse, error) {
	filter := ListFilter{Query: query.Q}
	if query.Status != "" {
		status, ok := ParseStatus(query.Status)
		if !ok {
			return nil, leaveerrors.ErrInvalidStatus.WithDetails(map[string]string{
				"status": leaveerrors.ErrInvalidStatus.Message,
			})
		}
		filter.Status = status
	}

	leaves, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if connection.IsNotFound(err) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

// Calendar serves the derived calendar from redis when possible. Concurrent
// misses share one database read, and a fill that raced a status change is
// dropped instead of cached.
func (s *service) Calendar(ctx context.Context) ([]CalendarEntry, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, CalendarCacheKey).Result()
		switch {
		case err == nil:
			var entries []CalendarEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("calendar cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(CalendarCacheKey, func() (any, error) {
		// shared by every waiter, so one caller going away must not fail the rest
		sctx := context.WithoutCancel(ctx)

		var gen string
		if s.rdb != nil {
			g, err := cache.Generation(sctx, s.rdb, CalendarCacheKey)
			if err != nil {
				s.logger.Warn("calendar cache generation read failed", zap.Error(err))
			} else {
				gen = g
			}
		}

		leaves, err := s.repo.FindApproved(sctx)
		if err != nil {
			return nil, err
		}
		entries := CalendarFor(leaves)

		if gen != "" {
			if payload, err := json.Marshal(entries); err == nil {
				stored, err := cache.Set(sctx, s.rdb, CalendarCacheKey, gen, string(payload), calendarCacheTTL)
				switch {
				case err != nil:
					s.logger.Warn("calendar cache write failed", zap.Error(err))
				case !stored:
					s.logger.Debug("calendar changed during read, cache fill skipped")
				}
			}
		}
		return entries, nil
	})
	if err != nil {
		s.logger.Error("build calendar failed", zap.Error(err))
		return nil, err
	}
	return v.([]CalendarEntry), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrLeaveNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if connection.IsNotFound(err) {
			return leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("delete leave failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	s.invalidateCalendar(ctx)
	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) invalidateCalendar(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	// the row is already committed; a departed caller must not skip this
	if err := cache.Invalidate(context.WithoutCancel(ctx), s.rdb, CalendarCacheKey); err != nil {
		s.logger.Error("failed to invalidate leave calendar cache",
			zap.String("key", CalendarCacheKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:           l.ID.String(),
		EmployeeName: l.EmployeeName,
		Position:     l.Position,
		Department:   l.Department,
		Date:         l.Date,
		Reason:       l.Reason,
		Status:       l.Status,
		Document:     l.Document,
		Profile:      l.Profile,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.Format(time.RFC3339),
	}
	if l.EmployeeID != nil {
		v := l.EmployeeID.String()
		resp.EmployeeID = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
