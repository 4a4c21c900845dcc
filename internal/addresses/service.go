package addresses

import (
	"context"
	"fmt"
	"strings"

	"github.com/glassph/glass-backend/internal/activity"
	"github.com/glassph/glass-backend/internal/users"
	"github.com/glassph/glass-backend/pkg/clock"
	"github.com/glassph/glass-backend/pkg/db/models"
	"github.com/glassph/glass-backend/pkg/enums"
	pkgerrors "github.com/glassph/glass-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages a user's address book. Orders copy the active address at
// checkout, so the one-active-address rule lives here.
type Service interface {
	Add(ctx context.Context, input AddInput) (*View, error)
	ListMine(ctx context.Context, email string) ([]View, error)
	Activate(ctx context.Context, email string, addressID int64) error
	Delete(ctx context.Context, email string, addressID int64) error
	ActiveFor(ctx context.Context, email string) (*models.Address, error)
}

// AddInput carries a new address for the authenticated user.
type AddInput struct {
	Email       string
	HouseNumber string
	Street      string
	Barangay    string
	City        string
	Province    string
}

// View is the address shape returned to clients.
type View struct {
	ID          int64  `json:"id"`
	HouseNumber string `json:"house_number,omitempty"`
	Street      string `json:"street"`
	Barangay    string `json:"barangay,omitempty"`
	City        string `json:"city"`
	Province    string `json:"province,omitempty"`
	IsActive    bool   `json:"is_active"`
}

type service struct {
	repo     Repository
	users    users.Repository
	activity activity.Repository
	tx       txRunner
	clk      clock.Clock
}

// NewService builds the address service with the required dependencies.
func NewService(repo Repository, usersRepo users.Repository, activityRepo activity.Repository, tx txRunner, clk clock.Clock) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("addresses repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if activityRepo == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if clk == nil {
		return nil, fmt.Errorf("clock required")
	}
	return &service{repo: repo, users: usersRepo, activity: activityRepo, tx: tx, clk: clk}, nil
}

func (s *service) Add(ctx context.Context, input AddInput) (*View, error) {
	if strings.TrimSpace(input.Street) == "" || strings.TrimSpace(input.City) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "street and city are required")
	}

	user, err := s.findUser(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	address := &models.Address{
		UserID:      user.ID,
		HouseNumber: strings.TrimSpace(input.HouseNumber),
		Street:      strings.TrimSpace(input.Street),
		Barangay:    strings.TrimSpace(input.Barangay),
		City:        strings.TrimSpace(input.City),
		Province:    strings.TrimSpace(input.Province),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, listErr := repo.ListByUser(ctx, user.ID)
		if listErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, listErr, "list addresses")
		}
		// first address becomes active immediately
		address.IsActive = len(existing) == 0

		if _, createErr := repo.Create(ctx, address); createErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create address")
		}

		entry := &models.RecentActivity{
			UserEmail: user.Email,
			Action:    enums.ActivityActionAddedAddress,
			Detail:    fmt.Sprintf("%s, %s", address.Street, address.City),
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

	view := toView(*address)
	return &view, nil
}

func (s *service) ListMine(ctx context.Context, email string) ([]View, error) {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}

	views := make([]View, 0, len(rows))
	for _, row := range rows {
		views = append(views, toView(row))
	}
	return views, nil
}

func (s *service) Activate(ctx context.Context, email string, addressID int64) error {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		address, findErr := repo.FindByID(ctx, addressID)
		if findErr != nil {
			if findErr == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load address")
		}
		if address.UserID != user.ID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "address does not belong to user")
		}

		if deactErr := repo.DeactivateAllForUser(ctx, user.ID); deactErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, deactErr, "deactivate addresses")
		}
		if actErr := repo.SetActive(ctx, addressID); actErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, actErr, "activate address")
		}
		return nil
	})
}

func (s *service) Delete(ctx context.Context, email string, addressID int64) error {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return err
	}

	address, err := s.repo.FindByID(ctx, addressID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}
	if address.UserID != user.ID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "address does not belong to user")
	}

	if err := s.repo.Delete(ctx, addressID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete address")
	}
	return nil
}

func (s *service) ActiveFor(ctx context.Context, email string) (*models.Address, error) {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return nil, err
	}

	address, err := s.repo.FindActiveByUser(ctx, user.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no active address")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active address")
	}
	return address, nil
}

func (s *service) findUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

func toView(address models.Address) View {
	return View{
		ID:          address.ID,
		HouseNumber: address.HouseNumber,
		Street:      address.Street,
		Barangay:    address.Barangay,
		City:        address.City,
		Province:    address.Province,
		IsActive:    address.IsActive,
	}
}
