package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/glassph/glass-backend/pkg/clock"
	"github.com/glassph/glass-backend/pkg/db/models"
	pkgerrors "github.com/glassph/glass-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

const recentWindow = 7 * 24 * time.Hour

// Service is the read side over dashboard_data. The 7-day feed returns an
// empty slice when nothing sold; the explicit range read reports NotFound on
// an empty window. Clients depend on that asymmetry.
type Service interface {
	Recent(ctx context.Context) ([]DataPointView, error)
	Range(ctx context.Context, startRaw, endRaw string) ([]DataPointView, error)
}

// DataPointView is one reporting row as returned to the admin console.
type DataPointView struct {
	ID              int64           `json:"id"`
	ProductCategory string          `json:"product_category"`
	ProductName     string          `json:"product_name"`
	ProductQuantity int             `json:"product_quantity"`
	ProductPrice    decimal.Decimal `json:"product_price"`
	OrderDate       time.Time       `json:"order_date"`
}

type service struct {
	repo Repository
	clk  clock.Clock
}

// NewService builds the dashboard read service with the required dependencies.
func NewService(repo Repository, clk clock.Clock) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	if clk == nil {
		return nil, fmt.Errorf("clock required")
	}
	return &service{repo: repo, clk: clk}, nil
}

// Recent returns the last 7 days of data points, newest first.
func (s *service) Recent(ctx context.Context) ([]DataPointView, error) {
	since := s.clk.Now().Add(-recentWindow)
	rows, err := s.repo.ListSince(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recent dashboard data")
	}
	return toViews(rows), nil
}

// Range returns data points between two inclusive YYYY-MM-DD dates in the
// configured timezone, oldest first. A start after the end simply hits the
// empty window path.
func (s *service) Range(ctx context.Context, startRaw, endRaw string) ([]DataPointView, error) {
	start, err := s.parseDay(startRaw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date must be YYYY-MM-DD")
	}
	end, err := s.parseDay(endRaw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must be YYYY-MM-DD")
	}

	// inclusive end: query up to the start of the following day
	rows, err := s.repo.ListBetween(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dashboard data range")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no dashboard data in range")
	}
	return toViews(rows), nil
}

func (s *service) parseDay(raw string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", raw, s.clk.Location())
}

func toViews(rows []models.DashboardDataPoint) []DataPointView {
	views := make([]DataPointView, 0, len(rows))
	for _, row := range rows {
		views = append(views, DataPointView{
			ID:              row.ID,
			ProductCategory: row.ProductCategory,
			ProductName:     row.ProductName,
			ProductQuantity: row.ProductQuantity,
			ProductPrice:    row.ProductPrice,
			OrderDate:       row.OrderDate,
		})
	}
	return views
}
