package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/glassph/glass-backend/pkg/db/models"
	pkgerrors "github.com/glassph/glass-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes catalog management for the admin console and public reads
// for the storefront.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*View, error)
	Get(ctx context.Context, id int64) (*View, error)
	List(ctx context.Context, includeArchived bool) ([]View, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*View, error)
	Archive(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// CreateInput carries a new catalog listing.
type CreateInput struct {
	Category    string
	ProductType string
	Image       string
	Name        string
	Price       decimal.Decimal
	Description string
}

// UpdateInput carries partial catalog edits; nil fields are left untouched.
type UpdateInput struct {
	Category    *string
	ProductType *string
	Image       *string
	Name        *string
	Price       *decimal.Decimal
	Description *string
}

// View is the product shape returned to clients.
type View struct {
	ID          int64           `json:"id"`
	Category    string          `json:"category"`
	ProductType string          `json:"product_type"`
	Image       string          `json:"product_image,omitempty"`
	Name        string          `json:"product_name"`
	Price       decimal.Decimal `json:"product_price"`
	Description string          `json:"product_description"`
	IsArchived  bool            `json:"is_archived"`
}

type service struct {
	repo Repository
}

// NewService builds the catalog service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*View, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if strings.TrimSpace(input.Category) == "" || strings.TrimSpace(input.ProductType) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category and product type are required")
	}
	if input.Price.IsNegative() || input.Price.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be positive")
	}

	product := &models.Product{
		Category:    strings.TrimSpace(input.Category),
		ProductType: strings.TrimSpace(input.ProductType),
		Image:       strings.TrimSpace(input.Image),
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Description: strings.TrimSpace(input.Description),
	}
	if _, err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	view := toView(*product)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id int64) (*View, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(*product)
	return &view, nil
}

func (s *service) List(ctx context.Context, includeArchived bool) ([]View, error) {
	rows, err := s.repo.List(ctx, includeArchived)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	views := make([]View, 0, len(rows))
	for _, row := range rows {
		views = append(views, toView(row))
	}
	return views, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*View, error) {
	if _, err := s.findProduct(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.ProductType != nil {
		updates["product_type"] = strings.TrimSpace(*input.ProductType)
	}
	if input.Image != nil {
		updates["product_image"] = strings.TrimSpace(*input.Image)
	}
	if input.Name != nil {
		updates["product_name"] = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		if input.Price.IsNegative() || input.Price.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be positive")
		}
		updates["product_price"] = *input.Price
	}
	if input.Description != nil {
		updates["product_description"] = strings.TrimSpace(*input.Description)
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return s.Get(ctx, id)
}

func (s *service) Archive(ctx context.Context, id int64) error {
	if _, err := s.findProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, map[string]any{"is_archived": true}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archive product")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.findProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) findProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func toView(product models.Product) View {
	return View{
		ID:          product.ID,
		Category:    product.Category,
		ProductType: product.ProductType,
		Image:       product.Image,
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		IsArchived:  product.IsArchived,
	}
}
