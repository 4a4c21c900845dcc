package models

import "github.com/shopspring/decimal"

// OrderItem carries a frozen snapshot of the ordered product. ProductID is a
// plain value, not a foreign key: the snapshot must survive later edits to or
// deletion of the catalog entry.
type OrderItem struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID         int64           `gorm:"column:order_id;not null;index"`
	ProductID       int64           `gorm:"column:product_id;not null"`
	Quantity        int             `gorm:"column:quantity;not null;default:1"`
	ProductCategory string          `gorm:"column:product_category;not null"`
	ProductType     string          `gorm:"column:product_type;not null"`
	ProductImage    string          `gorm:"column:product_image"`
	ProductName     string          `gorm:"column:product_name;not null"`
	ProductPrice    decimal.Decimal `gorm:"column:product_price;type:numeric(10,2);not null"`
}
