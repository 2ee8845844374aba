package repository

import (
	"context"

	"github.com/tettoewai/restaurant-pos-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WMSRepository persists availability checker snapshots and notifications.
// Snapshots are append-only; they are never updated after creation.
type WMSRepository interface {
	CreateResult(ctx context.Context, res *model.WMSCheckResult) error
	ListResults(ctx context.Context, companyID uuid.UUID, limit int) ([]model.WMSCheckResult, error)

	// ListCompanyIDs feeds the scheduled sweep.
	ListCompanyIDs(ctx context.Context) ([]uuid.UUID, error)

	CreateNotification(ctx context.Context, n *model.Notification) error
	ListNotifications(ctx context.Context, companyID uuid.UUID, unreadOnly bool) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
}

type wmsRepo struct{ db *gorm.DB }

func NewWMSRepository(db *gorm.DB) WMSRepository { return &wmsRepo{db: db} }

func (r *wmsRepo) CreateResult(ctx context.Context, res *model.WMSCheckResult) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *wmsRepo) ListResults(ctx context.Context, companyID uuid.UUID, limit int) ([]model.WMSCheckResult, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var results []model.WMSCheckResult
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").Limit(limit).Find(&results).Error
	return results, err
}

func (r *wmsRepo) ListCompanyIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Company{}).Pluck("id", &ids).Error
	return ids, err
}

func (r *wmsRepo) CreateNotification(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *wmsRepo) ListNotifications(ctx context.Context, companyID uuid.UUID, unreadOnly bool) ([]model.Notification, error) {
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}
	var ns []model.Notification
	err := q.Order("created_at DESC").Limit(100).Find(&ns).Error
	return ns, err
}

func (r *wmsRepo) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", gorm.Expr("NOW()")).Error
}
