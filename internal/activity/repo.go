package activity

import (
	"context"

	"github.com/glassph/glass-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository appends and reads the admin recent-activity feed. Order creation
// writes through WithTx so the feed row commits with the order.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.RecentActivity) error
	ListRecent(ctx context.Context, limit int) ([]models.RecentActivity, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an activity repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.RecentActivity) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]models.RecentActivity, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []models.RecentActivity
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
