package enums

import (
	"fmt"
	"strings"
)

// OrderStatus tracks the lifecycle of a customer order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusInstalled  OrderStatus = "installed/shipped"
	OrderStatusRejected   OrderStatus = "rejected"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusInstalled,
	OrderStatusRejected,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further business processing happens after the status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusInstalled || s == OrderStatusRejected
}

// IsLogged reports whether crossing into the status appends audit log rows.
func (s OrderStatus) IsLogged() bool {
	return s.IsTerminal()
}

// ParseOrderStatus converts raw input into an OrderStatus. Matching is
// case-insensitive; the canonical lower-case value is stored.
func ParseOrderStatus(value string) (OrderStatus, error) {
	needle := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validOrderStatuses {
		if string(candidate) == needle {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// ValidOrderStatusValues lists the accepted wire values, for error messages.
func ValidOrderStatusValues() []string {
	values := make([]string, 0, len(validOrderStatuses))
	for _, candidate := range validOrderStatuses {
		values = append(values, string(candidate))
	}
	return values
}
