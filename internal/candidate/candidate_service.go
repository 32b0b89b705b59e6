package candidate

import (
	"context"
	"database/sql"
	"strings"
	"time"

	candidateerrors "hris-dashboard/internal/candidate/errors"
	"hris-dashboard/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=candidate_service.go -destination=mock/candidate_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCandidateRequest) (CandidateResponse, error)
	GetAll(ctx context.Context, query ListCandidatesQuery) ([]CandidateResponse, error)
	GetByID(ctx context.Context, id string) (CandidateResponse, error)
	Update(ctx context.Context, id string, req UpdateCandidateRequest) (CandidateResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("candidate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("candidate.service")
	}
	return &service{db: db, repo: repo, now: time.Now, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCandidateRequest) (CandidateResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	applied := s.now().UTC().Truncate(24 * time.Hour)
	if v := strings.TrimSpace(req.AppliedDate); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return CandidateResponse{}, candidateerrors.ErrInvalidAppliedDate
		}
		applied = t
	}
	status := req.Status
	if status == "" {
		status = StatusPending
	}

	c := &Candidate{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       strings.TrimSpace(req.Phone),
		Position:    strings.TrimSpace(req.Position),
		Status:      status,
		Resume:      req.Resume,
		AppliedDate: applied,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Warn("create candidate failed", zap.String("request_id", rid), zap.Error(err))
		return CandidateResponse{}, err
	}

	s.logger.Info("create candidate success",
		zap.String("request_id", rid),
		zap.String("candidate_id", c.ID.String()),
	)
	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context, query ListCandidatesQuery) ([]CandidateResponse, error) {
	rows, err := s.repo.FindAll(ctx, ListFilter{
		Name:   query.Name,
		Email:  query.Email,
		Status: query.Status,
	})
	if err != nil {
		s.logger.Error("list candidates failed", zap.Error(err))
		return nil, err
	}
	resp := make([]CandidateResponse, len(rows))
	for i, c := range rows {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CandidateResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CandidateResponse{}, candidateerrors.ErrCandidateNotFound
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CandidateResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCandidateRequest) (CandidateResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CandidateResponse{}, candidateerrors.ErrCandidateNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CandidateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	c, err := qtx.FindByID(ctx, id)
	if err != nil {
		return CandidateResponse{}, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Position != nil {
		c.Position = strings.TrimSpace(*req.Position)
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Resume != nil {
		c.Resume = *req.Resume
	}
	if req.AppliedDate != nil {
		t, err := time.Parse(dateLayout, strings.TrimSpace(*req.AppliedDate))
		if err != nil {
			return CandidateResponse{}, candidateerrors.ErrInvalidAppliedDate
		}
		c.AppliedDate = t
	}

	if err := qtx.Update(ctx, c); err != nil {
		s.logger.Warn("update candidate failed", zap.String("candidate_id", id), zap.Error(err))
		return CandidateResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CandidateResponse{}, err
	}

	s.logger.Info("update candidate success", zap.String("candidate_id", id), zap.String("status", c.Status))
	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return candidateerrors.ErrCandidateNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("delete candidate success", zap.String("candidate_id", id))
	return nil
}

func mapToResponse(c Candidate) CandidateResponse {
	resp := CandidateResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Position: c.Position,
		Status:   c.Status,
		Resume:   c.Resume,
	}
	if !c.AppliedDate.IsZero() {
		resp.AppliedDate = c.AppliedDate.Format(dateLayout)
	}
	return resp
}
