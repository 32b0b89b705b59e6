package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindRecent(ctx context.Context, limit int, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id string, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindRecent(ctx context.Context, limit int, unreadOnly bool) ([]Notification, error) {
	var out []Notification
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *repository) MarkRead(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Update("read_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
