package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/glassph/glass-backend/internal/activity"
	"github.com/glassph/glass-backend/internal/dashboard"
	"github.com/glassph/glass-backend/internal/products"
	"github.com/glassph/glass-backend/internal/users"
	"github.com/glassph/glass-backend/pkg/clock"
	"github.com/glassph/glass-backend/pkg/db/models"
	"github.com/glassph/glass-backend/pkg/enums"
	pkgerrors "github.com/glassph/glass-backend/pkg/errors"
	"github.com/glassph/glass-backend/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type activeAddressFinder interface {
	ActiveFor(ctx context.Context, email string) (*models.Address, error)
}

// Service drives the order lifecycle: creation with snapshot copying, status
// transitions with their audit/dashboard cascades, and the admin reads.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*View, error)
	Get(ctx context.Context, id int64) (*View, error)
	ListMine(ctx context.Context, email string) ([]View, error)
	ListAll(ctx context.Context) ([]View, error)
	UpdateStatus(ctx context.Context, id int64, statusRaw string) (*View, error)
	Reject(ctx context.Context, id int64, reason string) (*View, error)
	Delete(ctx context.Context, id int64) error
	UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (*View, error)
	PendingCount(ctx context.Context) (int64, error)
	Logs(ctx context.Context) ([]LogView, error)
}

// CreateInput carries a checkout request. Exactly one product per order.
type CreateInput struct {
	Email     string
	ProductID int64
	Quantity  int
	Note      string
}

type service struct {
	repo      Repository
	products  products.Repository
	users     users.Repository
	addresses activeAddressFinder
	activity  activity.Repository
	dashboard dashboard.Repository
	tx        txRunner
	clk       clock.Clock
	metrics   *metrics.OrderMetrics
}

// NewService builds the order service with the required dependencies.
func NewService(
	repo Repository,
	productsRepo products.Repository,
	usersRepo users.Repository,
	addresses activeAddressFinder,
	activityRepo activity.Repository,
	dashboardRepo dashboard.Repository,
	tx txRunner,
	clk clock.Clock,
	orderMetrics *metrics.OrderMetrics,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if addresses == nil {
		return nil, fmt.Errorf("active address finder required")
	}
	if activityRepo == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	if dashboardRepo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if clk == nil {
		return nil, fmt.Errorf("clock required")
	}
	return &service{
		repo:      repo,
		products:  productsRepo,
		users:     usersRepo,
		addresses: addresses,
		activity:  activityRepo,
		dashboard: dashboardRepo,
		tx:        tx,
		clk:       clk,
		metrics:   orderMetrics,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*View, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.IsArchived {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	address, err := s.addresses.ActiveFor(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserEmail:   user.Email,
		Status:      enums.OrderStatusPending,
		OrderNote:   strings.TrimSpace(input.Note),
		HouseNumber: address.HouseNumber,
		Street:      address.Street,
		Barangay:    address.Barangay,
		City:        address.City,
		Province:    address.Province,
		Items:       []models.OrderItem{SnapshotProduct(*product, input.Quantity)},
		CreatedAt:   s.clk.Now(),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, createErr := repo.CreateOrder(ctx, order); createErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create order")
		}

		entry := &models.RecentActivity{
			UserEmail: user.Email,
			Action:    enums.ActivityActionOrder,
			Detail:    fmt.Sprintf("Order #%d - %s", order.ID, product.Name),
			CreatedAt: s.clk.Now(),
		}
		if actErr := s.activity.WithTx(tx).Create(ctx, entry); actErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, actErr, "record activity")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncTransition(enums.OrderStatusPending.String())
	view := toView(*order)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id int64) (*View, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(*order)
	return &view, nil
}

func (s *service) ListMine(ctx context.Context, email string) ([]View, error) {
	rows, err := s.repo.ListByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no orders found")
	}
	return toViews(rows), nil
}

func (s *service) ListAll(ctx context.Context) ([]View, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no orders found")
	}
	return toViews(rows), nil
}

// UpdateStatus writes the new status and, when the target status is terminal,
// appends the audit cascade in the same transaction. Any valid status is
// accepted from any state; there is no transition graph.
func (s *service) UpdateStatus(ctx context.Context, id int64, statusRaw string) (*View, error) {
	status, err := enums.ParseOrderStatus(statusRaw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"valid_statuses": enums.ValidOrderStatusValues()})
	}

	var updated models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, findErr := repo.FindOrderByID(ctx, id)
		if findErr != nil {
			if findErr == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load order")
		}

		if updErr := repo.UpdateOrder(ctx, order.ID, map[string]any{"status": status}); updErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, updErr, "update order status")
		}
		order.Status = status

		if status.IsLogged() {
			logs := buildLogRows(*order, s.clk.Now())
			if logErr := repo.CreateLogs(ctx, logs); logErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, logErr, "append order logs")
			}
			s.metrics.AddAuditRows(len(logs))
		}
		if status == enums.OrderStatusInstalled {
			rows := buildDashboardRows(*order)
			if dashErr := s.dashboard.WithTx(tx).CreateDataPoints(ctx, rows); dashErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, dashErr, "append dashboard data")
			}
			s.metrics.AddDashboardRows(len(rows))
		}

		updated = *order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncTransition(status.String())
	view := toView(updated)
	return &view, nil
}

// Reject marks the order rejected with a mandatory reason. The reason lands
// on the order row and on every audit row appended for it.
func (s *service) Reject(ctx context.Context, id int64, reason string) (*View, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reject reason is required")
	}

	var updated models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, findErr := repo.FindOrderByID(ctx, id)
		if findErr != nil {
			if findErr == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load order")
		}

		updates := map[string]any{
			"status":        enums.OrderStatusRejected,
			"reject_reason": reason,
		}
		if updErr := repo.UpdateOrder(ctx, order.ID, updates); updErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, updErr, "reject order")
		}
		order.Status = enums.OrderStatusRejected
		order.RejectReason = reason

		logs := buildLogRows(*order, s.clk.Now())
		if logErr := repo.CreateLogs(ctx, logs); logErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, logErr, "append order logs")
		}
		s.metrics.AddAuditRows(len(logs))

		updated = *order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncTransition(enums.OrderStatusRejected.String())
	view := toView(updated)
	return &view, nil
}

// Delete removes the order and its items after pre-logging every item at the
// current status, so hard deletes stay visible in the audit trail.
func (s *service) Delete(ctx context.Context, id int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, findErr := repo.FindOrderByID(ctx, id)
		if findErr != nil {
			if findErr == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load order")
		}

		logs := buildLogRows(*order, s.clk.Now())
		if logErr := repo.CreateLogs(ctx, logs); logErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, logErr, "append order logs")
		}
		s.metrics.AddAuditRows(len(logs))

		if delErr := repo.DeleteOrder(ctx, order.ID); delErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, delErr, "delete order")
		}
		return nil
	})
}

// UpdatePrice overwrites the snapshot price on every item of the order.
// Allowed only while the order is still processing.
func (s *service) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (*View, error) {
	if price.IsNegative() || price.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	var updated models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, findErr := repo.FindOrderByID(ctx, id)
		if findErr != nil {
			if findErr == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load order")
		}
		if order.Status != enums.OrderStatusProcessing {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "price can only change while processing")
		}

		if updErr := repo.UpdateItemPrices(ctx, order.ID, map[string]any{"product_price": price}); updErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, updErr, "update item prices")
		}
		for i := range order.Items {
			order.Items[i].ProductPrice = price
		}

		updated = *order
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := toView(updated)
	return &view, nil
}

func (s *service) PendingCount(ctx context.Context) (int64, error) {
	count, err := s.repo.CountByStatus(ctx, enums.OrderStatusPending)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending orders")
	}
	return count, nil
}

func (s *service) Logs(ctx context.Context) ([]LogView, error) {
	rows, err := s.repo.ListLogs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order logs")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no order logs found")
	}
	views := make([]LogView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toLogView(row))
	}
	return views, nil
}

func (s *service) findOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func toViews(rows []models.Order) []View {
	views := make([]View, 0, len(rows))
	for _, row := range rows {
		views = append(views, toView(row))
	}
	return views
}
