package candidate

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	candidateerrors "hris-dashboard/internal/candidate/errors"
	"hris-dashboard/internal/shared/connection"

	"gorm.io/gorm"
)

// ListFilter matches name and email by substring, status exactly.
type ListFilter struct {
	Name   string
	Email  string
	Status string
}

//go:generate mockgen -source=candidate_repo.go -destination=mock/candidate_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Candidate) error
	FindAll(ctx context.Context, filter ListFilter) ([]Candidate, error)
	FindByID(ctx context.Context, id string) (*Candidate, error)
	Update(ctx context.Context, c *Candidate) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.Bind(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, c *Candidate) error {
	return mapRepositoryError(r.conn(ctx).Create(c).Error)
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Candidate, error) {
	var rows []Candidate
	q := r.conn(ctx).Order("applied_date DESC, name ASC")
	if v := strings.TrimSpace(filter.Name); v != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if v := strings.TrimSpace(filter.Email); v != "" {
		q = q.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Candidate, error) {
	var c Candidate
	if err := r.conn(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Candidate) error {
	res := r.conn(ctx).Model(c).Select("*").Omit("created_at").Updates(c)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return candidateerrors.ErrCandidateNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Candidate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return candidateerrors.ErrCandidateNotFound
	}
	return nil
}

// mapRepositoryError turns driver errors into candidate sentinels at the
// repository boundary.
func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return candidateerrors.ErrCandidateNotFound
	case connection.IsUniqueViolation(err, EmailConstraint):
		return candidateerrors.ErrCandidateAlreadyExists
	}
	return err
}
