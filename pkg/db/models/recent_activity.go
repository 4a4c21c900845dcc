package models

import (
	"time"

	"github.com/glassph/glass-backend/pkg/enums"
)

// RecentActivity is a lightweight admin feed entry, distinct from the order
// audit log.
type RecentActivity struct {
	ID        int64                `gorm:"column:id;primaryKey;autoIncrement"`
	UserEmail string               `gorm:"column:user_email;index"`
	Action    enums.ActivityAction `gorm:"column:action;type:text;not null"`
	Detail    string               `gorm:"column:detail;not null"`
	CreatedAt time.Time            `gorm:"column:created_at;not null"`
}
