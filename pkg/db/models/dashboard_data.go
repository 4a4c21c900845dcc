package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardDataPoint is one denormalized reporting row, appended once per
// order item when its order reaches the installed/shipped status. Read-only
// after insertion.
type DashboardDataPoint struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ProductCategory string          `gorm:"column:product_category;not null"`
	ProductName     string          `gorm:"column:product_name;not null"`
	ProductQuantity int             `gorm:"column:product_quantity;not null;default:1"`
	ProductPrice    decimal.Decimal `gorm:"column:product_price;type:numeric(10,2);not null"`
	OrderDate       time.Time       `gorm:"column:order_date;not null"`
}

// TableName keeps the historical table name.
func (DashboardDataPoint) TableName() string {
	return "dashboard_data"
}
