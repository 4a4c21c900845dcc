package models

import "github.com/shopspring/decimal"

// Product represents a catalog listing. Orders never reference products by
// foreign key after creation; their fields are copied into order items.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Category    string          `gorm:"column:category;not null"`
	ProductType string          `gorm:"column:product_type;not null"`
	Image       string          `gorm:"column:product_image"`
	Name        string          `gorm:"column:product_name;not null"`
	Price       decimal.Decimal `gorm:"column:product_price;type:numeric(10,2);not null"`
	Description string          `gorm:"column:product_description;not null"`
	IsArchived  bool            `gorm:"column:is_archived;not null;default:false"`
}
