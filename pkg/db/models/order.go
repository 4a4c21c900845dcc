package models

import (
	"time"

	"github.com/glassph/glass-backend/pkg/enums"
)

// Order is the live, mutable order record. The delivery address is copied
// from the user's active address at creation time; after an order has been
// logged only status and reject_reason ever change.
type Order struct {
	ID           int64             `gorm:"column:id;primaryKey;autoIncrement"`
	UserEmail    string            `gorm:"column:user_email;not null;index"`
	Status       enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	OrderNote    string            `gorm:"column:order_note"`
	HouseNumber  string            `gorm:"column:house_number"`
	Street       string            `gorm:"column:street;not null"`
	Barangay     string            `gorm:"column:barangay"`
	City         string            `gorm:"column:city;not null"`
	Province     string            `gorm:"column:province"`
	RejectReason string            `gorm:"column:reject_reason"`
	Items        []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at"`
}
