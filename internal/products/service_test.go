package products

import (
	"context"
	"testing"

	"github.com/glassph/glass-backend/pkg/db/models"
	pkgerrors "github.com/glassph/glass-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubProductsRepo struct {
	rows   map[int64]*models.Product
	nextID int64
}

func newStubProductsRepo() *stubProductsRepo {
	return &stubProductsRepo{rows: make(map[int64]*models.Product)}
}

func (s *stubProductsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubProductsRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == 0 {
		s.nextID++
		product.ID = s.nextID
	}
	cp := *product
	s.rows[product.ID] = &cp
	return product, nil
}

func (s *stubProductsRepo) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *stubProductsRepo) List(ctx context.Context, includeArchived bool) ([]models.Product, error) {
	var rows []models.Product
	for _, row := range s.rows {
		if !includeArchived && row.IsArchived {
			continue
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

func (s *stubProductsRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	row, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "category":
			row.Category = value.(string)
		case "product_type":
			row.ProductType = value.(string)
		case "product_image":
			row.Image = value.(string)
		case "product_name":
			row.Name = value.(string)
		case "product_price":
			row.Price = value.(decimal.Decimal)
		case "product_description":
			row.Description = value.(string)
		case "is_archived":
			row.IsArchived = value.(bool)
		}
	}
	return nil
}

func (s *stubProductsRepo) Delete(ctx context.Context, id int64) error {
	delete(s.rows, id)
	return nil
}

func newProductService(t *testing.T) (Service, *stubProductsRepo) {
	t.Helper()

	repo := newStubProductsRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo
}

func validCreateInput() CreateInput {
	return CreateInput{
		Category:    "Windows",
		ProductType: "Sliding",
		Image:       "sliding.jpg",
		Name:        "Sliding Window",
		Price:       decimal.NewFromInt(2500),
		Description: "Aluminum frame sliding window",
	}
}

func TestCreateProduct(t *testing.T) {
	svc, repo := newProductService(t)

	view, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if view.IsArchived {
		t.Fatalf("new products must not be archived")
	}
	if _, ok := repo.rows[view.ID]; !ok {
		t.Fatalf("product not persisted")
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newProductService(t)

	cases := []func(*CreateInput){
		func(in *CreateInput) { in.Name = " " },
		func(in *CreateInput) { in.Category = "" },
		func(in *CreateInput) { in.ProductType = "" },
		func(in *CreateInput) { in.Price = decimal.Zero },
		func(in *CreateInput) { in.Price = decimal.NewFromInt(-10) },
	}
	for i, mutate := range cases {
		input := validCreateInput()
		mutate(&input)
		_, err := svc.Create(context.Background(), input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("case %d: expected VALIDATION_ERROR, got %v", i, err)
		}
	}
}

func TestListHidesArchivedByDefault(t *testing.T) {
	svc, repo := newProductService(t)
	ctx := context.Background()

	live, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	archived, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Archive(ctx, archived.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	views, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 1 || views[0].ID != live.ID {
		t.Fatalf("expected only the live product, got %+v", views)
	}

	all, err := svc.List(ctx, true)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected archived product in admin list, got %d", len(all))
	}
	if !repo.rows[archived.ID].IsArchived {
		t.Fatalf("archive flag not persisted")
	}
}

func TestUpdatePartialFields(t *testing.T) {
	svc, repo := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newName := "Awning Window"
	view, err := svc.Update(ctx, created.ID, UpdateInput{Name: &newName})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if view.Name != "Awning Window" {
		t.Fatalf("name not updated: %q", view.Name)
	}
	if view.Category != "Windows" {
		t.Fatalf("untouched field changed: %q", view.Category)
	}
	if repo.rows[created.ID].Name != "Awning Window" {
		t.Fatalf("update not persisted")
	}
}

func TestUpdateRejectsNonPositivePrice(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	zero := decimal.Zero
	_, err = svc.Update(ctx, created.ID, UpdateInput{Price: &zero})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestUpdateWithNoFields(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(ctx, created.ID, UpdateInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestGetMissingProduct(t *testing.T) {
	svc, _ := newProductService(t)

	_, err := svc.Get(context.Background(), 999)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDeleteRemovesProduct(t *testing.T) {
	svc, repo := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.rows[created.ID]; ok {
		t.Fatalf("product not deleted")
	}
}
