package models

import (
	"time"

	"github.com/glassph/glass-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// OrderLog is one append-only audit row: the full state of one order item at
// the moment its order crossed a logged status (or was deleted). Rows are
// never updated or removed; OrderID points at the original order, which may
// no longer exist.
type OrderLog struct {
	ID              int64             `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID         int64             `gorm:"column:order_id;not null;index"`
	UserEmail       string            `gorm:"column:user_email;not null"`
	CreatedAt       time.Time         `gorm:"column:created_at;not null"`
	LoggedAt        time.Time         `gorm:"column:logged_at;not null"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null"`
	OrderNote       string            `gorm:"column:order_note"`
	HouseNumber     string            `gorm:"column:house_number"`
	Street          string            `gorm:"column:street;not null"`
	Barangay        string            `gorm:"column:barangay"`
	City            string            `gorm:"column:city;not null"`
	Province        string            `gorm:"column:province"`
	RejectReason    string            `gorm:"column:reject_reason"`
	ProductID       int64             `gorm:"column:product_id;not null"`
	ProductCategory string            `gorm:"column:product_category;not null"`
	ProductType     string            `gorm:"column:product_type;not null"`
	ProductImage    string            `gorm:"column:product_image"`
	ProductName     string            `gorm:"column:product_name;not null"`
	ProductPrice    decimal.Decimal   `gorm:"column:product_price;type:numeric(10,2);not null"`
	Quantity        int               `gorm:"column:quantity;not null;default:1"`
}
