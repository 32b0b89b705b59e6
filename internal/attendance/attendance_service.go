package attendance

import (
	"context"
	"database/sql"
	"strings"
	"time"

	attendanceerrors "hris-dashboard/internal/attendance/errors"
	"hris-dashboard/internal/events"
	"hris-dashboard/internal/notification"
	"hris-dashboard/internal/shared/connection"
	"hris-dashboard/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, query ListAttendancesQuery) ([]AttendanceResponse, error)
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	SetStatus(ctx context.Context, id string, status string) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	notifier notification.Notifier
	now      func() time.Time
	logger   *zap.Logger
}

// NewService builds the attendance service. notifier may be nil, in which
// case status changes are not pushed.
func NewService(db *sql.DB, repo Repository, notifier notification.Notifier, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return AttendanceResponse{}, attendanceerrors.ErrNameRequired.WithDetails(map[string]string{
			"name": "name is required",
		})
	}

	status := StatusPresent
	if req.Status != "" {
		parsed, ok := ParseStatus(req.Status)
		if !ok {
			return AttendanceResponse{}, invalidStatus()
		}
		status = parsed
	}

	var employeeID *uuid.UUID
	if req.EmployeeID != "" {
		id, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
		}
		employeeID = &id
	}

	row := &Attendance{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Name:       name,
		Position:   strings.TrimSpace(req.Position),
		Department: strings.TrimSpace(req.Department),
		Task:       strings.TrimSpace(req.Task),
		Status:     status,
		Profile:    req.Profile,
		Date:       strings.TrimSpace(req.Date),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create attendance failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("create attendance success",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("attendance_id", row.ID.String()),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, query ListAttendancesQuery) ([]AttendanceResponse, error) {
	filter := ListFilter{Query: query.Q}
	if query.Status != "" {
		status, ok := ParseStatus(query.Status)
		if !ok {
			return nil, invalidStatus()
		}
		filter.Status = status
	}

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list attendances failed", zap.Error(err))
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapNotFound(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapNotFound(err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return AttendanceResponse{}, attendanceerrors.ErrNameRequired.WithDetails(map[string]string{
				"name": "name is required",
			})
		}
		row.Name = name
	}
	if req.Position != nil {
		row.Position = strings.TrimSpace(*req.Position)
	}
	if req.Department != nil {
		row.Department = strings.TrimSpace(*req.Department)
	}
	if req.Task != nil {
		row.Task = strings.TrimSpace(*req.Task)
	}
	if req.Status != nil {
		status, ok := ParseStatus(*req.Status)
		if !ok {
			return AttendanceResponse{}, invalidStatus()
		}
		row.Status = status
	}
	if req.Profile != nil {
		row.Profile = *req.Profile
	}
	if req.Date != nil {
		row.Date = strings.TrimSpace(*req.Date)
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, mapNotFound(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

// SetStatus overwrites only the status column, then pushes a confirmation
// to connected dashboards. A failed push is logged, not returned.
func (s *service) SetStatus(ctx context.Context, id string, status string) (AttendanceResponse, error) {
	target, ok := ParseStatus(status)
	if !ok {
		return AttendanceResponse{}, invalidStatus()
	}
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapNotFound(err)
	}
	if err := qtx.UpdateStatus(ctx, id, target); err != nil {
		return AttendanceResponse{}, mapNotFound(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("set attendance status commit failed", zap.String("attendance_id", id), zap.Error(err))
		return AttendanceResponse{}, err
	}
	row.Status = target

	if s.notifier != nil {
		msg := notification.AttendanceStatusMessage(events.AttendanceStatusChangedEvent{
			EventType:    events.AttendanceStatusChangedType,
			AttendanceID: id,
			EmployeeName: row.Name,
			Status:       target.String(),
			OccurredAt:   s.now().UTC(),
		})
		if err := s.notifier.Push(ctx, msg); err != nil {
			s.logger.Warn("attendance status push failed", zap.String("attendance_id", id), zap.Error(err))
		}
	}

	s.logger.Info("set attendance status success",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("attendance_id", id),
		zap.String("status", target.String()),
	)
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return attendanceerrors.ErrAttendanceNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	s.logger.Info("delete attendance success", zap.String("attendance_id", id))
	return nil
}

func invalidStatus() error {
	return attendanceerrors.ErrInvalidStatus.WithDetails(map[string]string{
		"status": attendanceerrors.ErrInvalidStatus.Message,
	})
}

func mapNotFound(err error) error {
	if connection.IsNotFound(err) {
		return attendanceerrors.ErrAttendanceNotFound
	}
	return err
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID.String(),
		Name:       a.Name,
		Position:   a.Position,
		Department: a.Department,
		Task:       a.Task,
		Status:     a.Status,
		Profile:    a.Profile,
		Date:       a.Date,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt.Format(time.RFC3339),
	}
	if a.EmployeeID != nil {
		v := a.EmployeeID.String()
		resp.EmployeeID = &v
	}
	return resp
}
