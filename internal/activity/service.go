package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/glassph/glass-backend/pkg/clock"
	"github.com/glassph/glass-backend/pkg/db/models"
	"github.com/glassph/glass-backend/pkg/enums"
	pkgerrors "github.com/glassph/glass-backend/pkg/errors"
)

const defaultFeedLimit = 20

// Service exposes the admin recent-activity feed.
type Service interface {
	Record(ctx context.Context, action enums.ActivityAction, email, detail string) error
	ListRecent(ctx context.Context, limit int) ([]EntryView, error)
}

// EntryView is the feed entry shape returned to the admin console.
type EntryView struct {
	ID        int64     `json:"id"`
	UserEmail string    `json:"user_email,omitempty"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

type service struct {
	repo Repository
	clk  clock.Clock
}

// NewService builds the activity service with the required dependencies.
func NewService(repo Repository, clk clock.Clock) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	if clk == nil {
		return nil, fmt.Errorf("clock required")
	}
	return &service{repo: repo, clk: clk}, nil
}

func (s *service) Record(ctx context.Context, action enums.ActivityAction, email, detail string) error {
	entry := &models.RecentActivity{
		UserEmail: email,
		Action:    action,
		Detail:    detail,
		CreatedAt: s.clk.Now(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record activity")
	}
	return nil
}

func (s *service) ListRecent(ctx context.Context, limit int) ([]EntryView, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	entries, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recent activity")
	}

	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, EntryView{
			ID:        entry.ID,
			UserEmail: entry.UserEmail,
			Action:    entry.Action.String(),
			Detail:    entry.Detail,
			CreatedAt: entry.CreatedAt,
		})
	}
	return views, nil
}
