package orders

import (
	"context"
	"testing"
	"time"

	"github.com/glassph/glass-backend/pkg/db/models"
	"github.com/glassph/glass-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_email TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  order_note TEXT,
  house_number TEXT,
  street TEXT NOT NULL,
  barangay TEXT,
  city TEXT NOT NULL,
  province TEXT,
  reject_reason TEXT,
  created_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL,
  product_id INTEGER NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  product_category TEXT NOT NULL,
  product_type TEXT NOT NULL,
  product_image TEXT,
  product_name TEXT NOT NULL,
  product_price NUMERIC NOT NULL
);`
	orderLogs := `
CREATE TABLE IF NOT EXISTS order_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL,
  user_email TEXT NOT NULL,
  created_at DATETIME NOT NULL,
  logged_at DATETIME NOT NULL,
  status TEXT NOT NULL,
  order_note TEXT,
  house_number TEXT,
  street TEXT NOT NULL,
  barangay TEXT,
  city TEXT NOT NULL,
  province TEXT,
  reject_reason TEXT,
  product_id INTEGER NOT NULL,
  product_category TEXT NOT NULL,
  product_type TEXT NOT NULL,
  product_image TEXT,
  product_name TEXT NOT NULL,
  product_price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	require.NoError(t, db.Exec(orderLogs).Error)
	return db
}

func insertOrder(t *testing.T, db *gorm.DB, email string, status enums.OrderStatus, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		UserEmail: email,
		Status:    status,
		Street:    "Mabini St",
		City:      "Quezon City",
		Province:  "Metro Manila",
		CreatedAt: created,
		Items: []models.OrderItem{{
			ProductID:       7,
			Quantity:        2,
			ProductCategory: "Windows",
			ProductType:     "Sliding",
			ProductName:     "Sliding Window",
			ProductPrice:    decimal.NewFromInt(2500),
		}},
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepoCreateAndFindOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := insertOrder(t, db, "buyer@example.com", enums.OrderStatusPending, time.Now())

	found, err := repo.FindOrderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", found.UserEmail)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Sliding Window", found.Items[0].ProductName)
	assert.True(t, found.Items[0].ProductPrice.Equal(decimal.NewFromInt(2500)))
}

func TestRepoFindOrderMissing(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindOrderByID(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepoListByEmailNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	older := insertOrder(t, db, "buyer@example.com", enums.OrderStatusPending, base)
	newer := insertOrder(t, db, "buyer@example.com", enums.OrderStatusPending, base.Add(time.Hour))
	insertOrder(t, db, "other@example.com", enums.OrderStatusPending, base.Add(2*time.Hour))

	rows, err := repo.ListByEmail(ctx, "buyer@example.com")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, older.ID, rows[1].ID)
	require.Len(t, rows[0].Items, 1)
}

func TestRepoDeleteOrderRemovesItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := insertOrder(t, db, "buyer@example.com", enums.OrderStatusPending, time.Now())
	require.NoError(t, repo.DeleteOrder(ctx, order.ID))

	_, err := repo.FindOrderByID(ctx, order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestRepoLogsSurviveOrderDeletion(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := insertOrder(t, db, "buyer@example.com", enums.OrderStatusPending, time.Now())
	logs := buildLogRows(*order, time.Now())
	require.NoError(t, repo.CreateLogs(ctx, logs))
	require.NoError(t, repo.DeleteOrder(ctx, order.ID))

	rows, err := repo.ListLogs(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, order.ID, rows[0].OrderID)
	assert.Equal(t, "Sliding Window", rows[0].ProductName)
}

func TestRepoCountByStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	insertOrder(t, db, "a@example.com", enums.OrderStatusPending, time.Now())
	insertOrder(t, db, "b@example.com", enums.OrderStatusPending, time.Now())
	insertOrder(t, db, "c@example.com", enums.OrderStatusProcessing, time.Now())

	count, err := repo.CountByStatus(ctx, enums.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRepoUpdateItemPrices(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := insertOrder(t, db, "buyer@example.com", enums.OrderStatusProcessing, time.Now())
	newPrice := decimal.NewFromInt(3000)
	require.NoError(t, repo.UpdateItemPrices(ctx, order.ID, map[string]any{"product_price": newPrice}))

	found, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.True(t, found.Items[0].ProductPrice.Equal(newPrice))
}
