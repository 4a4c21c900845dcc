package addresses

import (
	"context"
	"testing"
	"time"

	"github.com/glassph/glass-backend/internal/activity"
	"github.com/glassph/glass-backend/internal/users"
	"github.com/glassph/glass-backend/pkg/clock"
	"github.com/glassph/glass-backend/pkg/db/models"
	pkgerrors "github.com/glassph/glass-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubAddressesRepo struct {
	rows   map[int64]*models.Address
	nextID int64
}

func newStubAddressesRepo() *stubAddressesRepo {
	return &stubAddressesRepo{rows: make(map[int64]*models.Address)}
}

func (s *stubAddressesRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubAddressesRepo) Create(ctx context.Context, address *models.Address) (*models.Address, error) {
	if address.ID == 0 {
		s.nextID++
		address.ID = s.nextID
	}
	cp := *address
	s.rows[address.ID] = &cp
	return address, nil
}

func (s *stubAddressesRepo) FindByID(ctx context.Context, id int64) (*models.Address, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *stubAddressesRepo) ListByUser(ctx context.Context, userID int64) ([]models.Address, error) {
	var rows []models.Address
	for _, row := range s.rows {
		if row.UserID == userID {
			rows = append(rows, *row)
		}
	}
	return rows, nil
}

func (s *stubAddressesRepo) FindActiveByUser(ctx context.Context, userID int64) (*models.Address, error) {
	for _, row := range s.rows {
		if row.UserID == userID && row.IsActive {
			cp := *row
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAddressesRepo) DeactivateAllForUser(ctx context.Context, userID int64) error {
	for _, row := range s.rows {
		if row.UserID == userID {
			row.IsActive = false
		}
	}
	return nil
}

func (s *stubAddressesRepo) SetActive(ctx context.Context, id int64) error {
	row, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.IsActive = true
	return nil
}

func (s *stubAddressesRepo) Delete(ctx context.Context, id int64) error {
	delete(s.rows, id)
	return nil
}

type stubUsersRepo struct {
	users map[string]*models.User
}

func (s *stubUsersRepo) WithTx(tx *gorm.DB) users.Repository {
	return s
}

func (s *stubUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	panic("not implemented")
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUsersRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := s.users[email]
	return ok, nil
}

func (s *stubUsersRepo) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	panic("not implemented")
}

type stubActivityRepo struct {
	entries []models.RecentActivity
}

func (s *stubActivityRepo) WithTx(tx *gorm.DB) activity.Repository {
	return s
}

func (s *stubActivityRepo) Create(ctx context.Context, entry *models.RecentActivity) error {
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *stubActivityRepo) ListRecent(ctx context.Context, limit int) ([]models.RecentActivity, error) {
	return s.entries, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type addressFixture struct {
	svc      Service
	repo     *stubAddressesRepo
	activity *stubActivityRepo
}

func newAddressFixture(t *testing.T) *addressFixture {
	t.Helper()

	f := &addressFixture{
		repo:     newStubAddressesRepo(),
		activity: &stubActivityRepo{},
	}
	usersRepo := &stubUsersRepo{users: map[string]*models.User{
		"buyer@example.com": {ID: 1, Email: "buyer@example.com", IsActive: true},
		"other@example.com": {ID: 2, Email: "other@example.com", IsActive: true},
	}}

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc, err := NewService(f.repo, usersRepo, f.activity, stubTxRunner{}, clock.Fixed(now))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	f.svc = svc
	return f
}

func TestAddFirstAddressBecomesActive(t *testing.T) {
	f := newAddressFixture(t)

	first, err := f.svc.Add(context.Background(), AddInput{
		Email:  "buyer@example.com",
		Street: "Mabini St",
		City:   "Quezon City",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !first.IsActive {
		t.Fatalf("first address must become active")
	}

	second, err := f.svc.Add(context.Background(), AddInput{
		Email:  "buyer@example.com",
		Street: "Rizal Ave",
		City:   "Manila",
	})
	if err != nil {
		t.Fatalf("Add second: %v", err)
	}
	if second.IsActive {
		t.Fatalf("subsequent addresses must not auto-activate")
	}

	if len(f.activity.entries) != 2 {
		t.Fatalf("expected activity entry per add, got %d", len(f.activity.entries))
	}
}

func TestAddRequiresStreetAndCity(t *testing.T) {
	f := newAddressFixture(t)

	_, err := f.svc.Add(context.Background(), AddInput{
		Email:  "buyer@example.com",
		Street: "  ",
		City:   "Quezon City",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestActivateMovesTheActiveFlag(t *testing.T) {
	f := newAddressFixture(t)
	ctx := context.Background()

	first, _ := f.svc.Add(ctx, AddInput{Email: "buyer@example.com", Street: "Mabini St", City: "Quezon City"})
	second, _ := f.svc.Add(ctx, AddInput{Email: "buyer@example.com", Street: "Rizal Ave", City: "Manila"})

	if err := f.svc.Activate(ctx, "buyer@example.com", second.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	active, err := f.svc.ActiveFor(ctx, "buyer@example.com")
	if err != nil {
		t.Fatalf("ActiveFor: %v", err)
	}
	if active.ID != second.ID {
		t.Fatalf("active address = %d, want %d", active.ID, second.ID)
	}
	if f.repo.rows[first.ID].IsActive {
		t.Fatalf("previous active address not deactivated")
	}
}

func TestActivateRejectsForeignAddress(t *testing.T) {
	f := newAddressFixture(t)
	ctx := context.Background()

	mine, _ := f.svc.Add(ctx, AddInput{Email: "buyer@example.com", Street: "Mabini St", City: "Quezon City"})

	err := f.svc.Activate(ctx, "other@example.com", mine.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestActiveForWithoutActiveAddress(t *testing.T) {
	f := newAddressFixture(t)

	_, err := f.svc.ActiveFor(context.Background(), "buyer@example.com")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected STATE_CONFLICT, got %v", err)
	}
}

func TestDeleteRejectsForeignAddress(t *testing.T) {
	f := newAddressFixture(t)
	ctx := context.Background()

	mine, _ := f.svc.Add(ctx, AddInput{Email: "buyer@example.com", Street: "Mabini St", City: "Quezon City"})

	err := f.svc.Delete(ctx, "other@example.com", mine.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if _, ok := f.repo.rows[mine.ID]; !ok {
		t.Fatalf("address must survive a forbidden delete")
	}
}

func TestDeleteMissingAddress(t *testing.T) {
	f := newAddressFixture(t)

	err := f.svc.Delete(context.Background(), "buyer@example.com", 999)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
