package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/glassph/glass-backend/internal/activity"
	"github.com/glassph/glass-backend/internal/users"
	"github.com/glassph/glass-backend/internal/verification"
	pkgauth "github.com/glassph/glass-backend/pkg/auth"
	"github.com/glassph/glass-backend/pkg/auth/session"
	"github.com/glassph/glass-backend/pkg/clock"
	"github.com/glassph/glass-backend/pkg/config"
	"github.com/glassph/glass-backend/pkg/db"
	"github.com/glassph/glass-backend/pkg/db/models"
	"github.com/glassph/glass-backend/pkg/enums"
	pkgerrors "github.com/glassph/glass-backend/pkg/errors"
	"github.com/glassph/glass-backend/pkg/security"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type sessionRegistry interface {
	Establish(ctx context.Context, tokenID, email string) error
	Revoke(ctx context.Context, tokenID string) error
}

// Service covers account registration and token issuance for both customers
// and console admins.
type Service interface {
	Register(ctx context.Context, input RegisterInput) error
	Login(ctx context.Context, email, password string) (*TokenResult, error)
	AdminLogin(ctx context.Context, email, password string) (*TokenResult, error)
	Logout(ctx context.Context, tokenID string) error
}

// RegisterInput carries a signup request. Code must have been issued by the
// verification service for the same email.
type RegisterInput struct {
	Email    string
	Password string
	Code     string
}

// TokenResult is the issued credential returned to clients.
type TokenResult struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	Email       string          `json:"email"`
	Role        enums.ActorRole `json:"role"`
}

type service struct {
	users        users.Repository
	activity     activity.Repository
	verification verification.Service
	sessions     sessionRegistry
	tx           txRunner
	clk          clock.Clock
	jwtCfg       config.JWTConfig
	passwordCfg  config.PasswordConfig
}

// NewService builds the auth service with the required dependencies.
func NewService(
	usersRepo users.Repository,
	activityRepo activity.Repository,
	verificationSvc verification.Service,
	sessions sessionRegistry,
	tx txRunner,
	clk clock.Clock,
	jwtCfg config.JWTConfig,
	passwordCfg config.PasswordConfig,
) (Service, error) {
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if activityRepo == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	if verificationSvc == nil {
		return nil, fmt.Errorf("verification service required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session registry required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if clk == nil {
		return nil, fmt.Errorf("clock required")
	}
	return &service{
		users:        usersRepo,
		activity:     activityRepo,
		verification: verificationSvc,
		sessions:     sessions,
		tx:           tx,
		clk:          clk,
		jwtCfg:       jwtCfg,
		passwordCfg:  passwordCfg,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) error {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(input.Password) < minPasswordLength {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	if err := s.verification.VerifyCode(ctx, email, input.Code); err != nil {
		return err
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
	}
	if exists {
		return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		user := &models.User{
			Email:        email,
			PasswordHash: hash,
			IsActive:     true,
			CreatedAt:    s.clk.Now(),
		}
		if _, createErr := s.users.WithTx(tx).Create(ctx, user); createErr != nil {
			if db.IsUniqueViolation(createErr, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create user")
		}

		entry := &models.RecentActivity{
			UserEmail: email,
			Action:    enums.ActivityActionSignUp,
			Detail:    email,
			CreatedAt: s.clk.Now(),
		}
		if actErr := s.activity.WithTx(tx).Create(ctx, entry); actErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, actErr, "record activity")
		}
		return nil
	})
}

func (s *service) Login(ctx context.Context, email, password string) (*TokenResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account disabled")
	}

	return s.issueToken(ctx, user.Email, enums.ActorRoleUser)
}

func (s *service) AdminLogin(ctx context.Context, email, password string) (*TokenResult, error) {
	admin, err := s.users.FindAdminByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin")
	}

	ok, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	return s.issueToken(ctx, admin.Email, enums.ActorRoleAdmin)
}

func (s *service) Logout(ctx context.Context, tokenID string) error {
	if strings.TrimSpace(tokenID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "no session")
	}
	if err := s.sessions.Revoke(ctx, tokenID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) issueToken(ctx context.Context, email string, role enums.ActorRole) (*TokenResult, error) {
	jti := session.NewTokenID()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.clk.Now(), pkgauth.AccessTokenPayload{
		Email: email,
		Role:  role,
		JTI:   jti,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	if err := s.sessions.Establish(ctx, jti, email); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "establish session")
	}

	return &TokenResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.jwtCfg.AccessTokenTTL().Seconds()),
		Email:       email,
		Role:        role,
	}, nil
}
