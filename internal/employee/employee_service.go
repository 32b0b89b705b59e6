package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	employeeerrors "hris-dashboard/internal/employee/errors"
	"hris-dashboard/internal/shared/cache"
	"hris-dashboard/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsCacheTTL    = time.Hour
	dateLayout         = "2006-01-02"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, query ListEmployeesQuery) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" {
		return EmployeeResponse{}, employeeerrors.ErrMissingRequiredFields
	}

	joining, err := parseDate(req.JoiningDate)
	if err != nil {
		s.logger.Warn("create employee invalid joining_date", zap.String("joining_date", req.JoiningDate))
		return EmployeeResponse{}, err
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}

	empl := &Employee{
		ID:          uuid.New(),
		Name:        name,
		Email:       email,
		Phone:       strings.TrimSpace(req.Phone),
		Position:    strings.TrimSpace(req.Position),
		Department:  strings.TrimSpace(req.Department),
		JoiningDate: joining,
		Status:      status,
		Profile:     req.Profile,
	}

	if err := s.repo.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)
	return mapToResponse(*empl), nil
}

// GetAll filters in the database and sorts in memory by name, email,
// department or joining_date.
func (s *service) GetAll(ctx context.Context, query ListEmployeesQuery) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("q", query.Q))
	employees, err := s.repo.FindAll(ctx, ListFilter{
		Query:      query.Q,
		Department: query.Department,
		Status:     query.Status,
	})
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := mapToListResponse(employees)
	sortEmployees(resp, query.SortBy, query.SortDir)
	return resp, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result()
		switch {
		case err == nil:
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("employee options cache read failed", zap.Error(err))
		}
	}

	// Opening the leave form fans out many identical reads.
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (any, error) {
		sctx := context.WithoutCancel(ctx)

		var gen string
		if s.rdb != nil {
			g, err := cache.Generation(sctx, s.rdb, EmployeeOptionsKey)
			if err != nil {
				s.logger.Warn("employee options cache generation read failed", zap.Error(err))
			} else {
				gen = g
			}
		}

		employees, err := s.repo.FindOptions(sctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOption, len(employees))
		for i, e := range employees {
			resp[i] = EmployeeOption{ID: e.ID.String(), Name: e.Name}
		}

		if gen != "" {
			if payload, err := json.Marshal(resp); err == nil {
				if _, err := cache.Set(sctx, s.rdb, EmployeeOptionsKey, gen, string(payload), optionsCacheTTL); err != nil {
					s.logger.Warn("employee options cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		empl.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		empl.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		empl.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Position != nil {
		empl.Position = strings.TrimSpace(*req.Position)
	}
	if req.Department != nil {
		empl.Department = strings.TrimSpace(*req.Department)
	}
	if req.JoiningDate != nil {
		joining, err := parseDate(*req.JoiningDate)
		if err != nil {
			return EmployeeResponse{}, err
		}
		empl.JoiningDate = joining
	}
	if req.Status != nil {
		empl.Status = *req.Status
	}
	if req.Profile != nil {
		empl.Profile = *req.Profile
	}
	if empl.Name == "" || empl.Email == "" {
		return EmployeeResponse{}, employeeerrors.ErrMissingRequiredFields
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrEmployeeNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := cache.Invalidate(context.WithoutCancel(ctx), s.rdb, EmployeeOptionsKey); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, employeeerrors.ErrInvalidJoiningDate
	}
	return t, nil
}

func sortEmployees(resp []EmployeeResponse, sortBy, sortDir string) {
	sortBy = strings.ToLower(strings.TrimSpace(sortBy))
	desc := strings.EqualFold(strings.TrimSpace(sortDir), "desc")

	key := func(e EmployeeResponse) string {
		switch sortBy {
		case "email":
			return strings.ToLower(e.Email)
		case "department":
			return strings.ToLower(e.Department)
		case "joining_date":
			return e.JoiningDate
		default:
			return strings.ToLower(e.Name)
		}
	}
	sort.SliceStable(resp, func(i, j int) bool {
		if desc {
			return key(resp[i]) > key(resp[j])
		}
		return key(resp[i]) < key(resp[j])
	})
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         empl.ID.String(),
		Name:       empl.Name,
		Email:      empl.Email,
		Phone:      empl.Phone,
		Position:   empl.Position,
		Department: empl.Department,
		Status:     empl.Status,
		Profile:    empl.Profile,
	}
	if !empl.JoiningDate.IsZero() {
		resp.JoiningDate = empl.JoiningDate.Format(dateLayout)
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
