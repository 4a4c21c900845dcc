package dashboard

import (
	"context"
	"time"

	"github.com/glassph/glass-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads and appends dashboard reporting rows. The write side is
// driven by the order service inside its status-update transaction.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateDataPoints(ctx context.Context, rows []models.DashboardDataPoint) error
	ListSince(ctx context.Context, since time.Time) ([]models.DashboardDataPoint, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]models.DashboardDataPoint, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a dashboard repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateDataPoints(ctx context.Context, rows []models.DashboardDataPoint) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) ListSince(ctx context.Context, since time.Time) ([]models.DashboardDataPoint, error) {
	var rows []models.DashboardDataPoint
	err := r.db.WithContext(ctx).
		Where("order_date >= ?", since).
		Order("order_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListBetween(ctx context.Context, from, to time.Time) ([]models.DashboardDataPoint, error) {
	var rows []models.DashboardDataPoint
	err := r.db.WithContext(ctx).
		Where("order_date >= ? AND order_date < ?", from, to).
		Order("order_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
