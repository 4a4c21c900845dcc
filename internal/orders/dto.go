package orders

import (
	"time"

	"github.com/glassph/glass-backend/pkg/db/models"
	"github.com/glassph/glass-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// ItemView is the frozen product snapshot carried by an order.
type ItemView struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	ProductCategory string          `json:"product_category"`
	ProductType     string          `json:"product_type"`
	ProductImage    string          `json:"product_image,omitempty"`
	ProductName     string          `json:"product_name"`
	ProductPrice    decimal.Decimal `json:"product_price"`
}

// View is the order shape returned to clients. TotalPrice is computed from
// the snapshot, never from the live catalog.
type View struct {
	ID           int64                 `json:"id"`
	UserEmail    string                `json:"user_email"`
	Status       string                `json:"status"`
	OrderNote    string                `json:"order_note,omitempty"`
	Address      types.DeliveryAddress `json:"delivery_address"`
	RejectReason string                `json:"reject_reason,omitempty"`
	Items        []ItemView            `json:"items"`
	TotalPrice   decimal.Decimal       `json:"total_price"`
	CreatedAt    time.Time             `json:"created_at"`
}

// LogView is one audit log row as returned to the admin console.
type LogView struct {
	ID           int64                 `json:"id"`
	OrderID      int64                 `json:"order_id"`
	UserEmail    string                `json:"user_email"`
	Status       string                `json:"status"`
	OrderNote    string                `json:"order_note,omitempty"`
	Address      types.DeliveryAddress `json:"delivery_address"`
	RejectReason string                `json:"reject_reason,omitempty"`
	ProductName  string                `json:"product_name"`
	ProductPrice decimal.Decimal       `json:"product_price"`
	Quantity     int                   `json:"quantity"`
	TotalPrice   decimal.Decimal       `json:"total_price"`
	CreatedAt    time.Time             `json:"created_at"`
	LoggedAt     time.Time             `json:"logged_at"`
}

// SnapshotProduct freezes the catalog fields of a product into an order item.
// Pure function; the item never follows later catalog edits.
func SnapshotProduct(product models.Product, quantity int) models.OrderItem {
	return models.OrderItem{
		ProductID:       product.ID,
		Quantity:        quantity,
		ProductCategory: product.Category,
		ProductType:     product.ProductType,
		ProductImage:    product.Image,
		ProductName:     product.Name,
		ProductPrice:    product.Price,
	}
}

// buildLogRows materializes one audit row per order item from the order's
// current fields. The caller decides the status recorded on the rows.
func buildLogRows(order models.Order, loggedAt time.Time) []models.OrderLog {
	rows := make([]models.OrderLog, 0, len(order.Items))
	for _, item := range order.Items {
		rows = append(rows, models.OrderLog{
			OrderID:         order.ID,
			UserEmail:       order.UserEmail,
			CreatedAt:       order.CreatedAt,
			LoggedAt:        loggedAt,
			Status:          order.Status,
			OrderNote:       order.OrderNote,
			HouseNumber:     order.HouseNumber,
			Street:          order.Street,
			Barangay:        order.Barangay,
			City:            order.City,
			Province:        order.Province,
			RejectReason:    order.RejectReason,
			ProductID:       item.ProductID,
			ProductCategory: item.ProductCategory,
			ProductType:     item.ProductType,
			ProductImage:    item.ProductImage,
			ProductName:     item.ProductName,
			ProductPrice:    item.ProductPrice,
			Quantity:        item.Quantity,
		})
	}
	return rows
}

// buildDashboardRows materializes one reporting row per item, dated with the
// order's original creation time.
func buildDashboardRows(order models.Order) []models.DashboardDataPoint {
	rows := make([]models.DashboardDataPoint, 0, len(order.Items))
	for _, item := range order.Items {
		rows = append(rows, models.DashboardDataPoint{
			ProductCategory: item.ProductCategory,
			ProductName:     item.ProductName,
			ProductQuantity: item.Quantity,
			ProductPrice:    item.ProductPrice,
			OrderDate:       order.CreatedAt,
		})
	}
	return rows
}

func toView(order models.Order) View {
	items := make([]ItemView, 0, len(order.Items))
	total := decimal.Zero
	for _, item := range order.Items {
		items = append(items, ItemView{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			ProductCategory: item.ProductCategory,
			ProductType:     item.ProductType,
			ProductImage:    item.ProductImage,
			ProductName:     item.ProductName,
			ProductPrice:    item.ProductPrice,
		})
		total = total.Add(item.ProductPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return View{
		ID:           order.ID,
		UserEmail:    order.UserEmail,
		Status:       order.Status.String(),
		OrderNote:    order.OrderNote,
		Address:      addressOf(order),
		RejectReason: order.RejectReason,
		Items:        items,
		TotalPrice:   total,
		CreatedAt:    order.CreatedAt,
	}
}

func toLogView(row models.OrderLog) LogView {
	return LogView{
		ID:           row.ID,
		OrderID:      row.OrderID,
		UserEmail:    row.UserEmail,
		Status:       row.Status.String(),
		OrderNote:    row.OrderNote,
		Address:      logAddressOf(row),
		RejectReason: row.RejectReason,
		ProductName:  row.ProductName,
		ProductPrice: row.ProductPrice,
		Quantity:     row.Quantity,
		TotalPrice:   row.ProductPrice.Mul(decimal.NewFromInt(int64(row.Quantity))),
		CreatedAt:    row.CreatedAt,
		LoggedAt:     row.LoggedAt,
	}
}

func addressOf(order models.Order) types.DeliveryAddress {
	return types.DeliveryAddress{
		HouseNumber: order.HouseNumber,
		Street:      order.Street,
		Barangay:    order.Barangay,
		City:        order.City,
		Province:    order.Province,
	}
}

func logAddressOf(row models.OrderLog) types.DeliveryAddress {
	return types.DeliveryAddress{
		HouseNumber: row.HouseNumber,
		Street:      row.Street,
		Barangay:    row.Barangay,
		City:        row.City,
		Province:    row.Province,
	}
}
