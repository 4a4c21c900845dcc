package verification

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/glassph/glass-backend/pkg/config"
	pkgerrors "github.com/glassph/glass-backend/pkg/errors"
	"github.com/glassph/glass-backend/pkg/security"
)

const codeLength = 6

// CodeStore holds verification codes with a TTL. Backed by Redis in
// production.
type CodeStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	VerificationKey(email string) string
}

type nilChecker func(error) bool

// Service issues and checks email verification codes. Registration requires a
// verified code, so this runs before the users table is touched.
type Service interface {
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
}

type service struct {
	store  CodeStore
	mailer Mailer
	cfg    config.VerificationConfig
	isNil  nilChecker
}

// NewService builds the verification service with the required dependencies.
func NewService(store CodeStore, mailer Mailer, cfg config.VerificationConfig, isNil func(error) bool) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("code store required")
	}
	if mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	if cfg.CodeTTL <= 0 {
		return nil, fmt.Errorf("code ttl must be positive")
	}
	if isNil == nil {
		return nil, fmt.Errorf("nil checker required")
	}
	return &service{store: store, mailer: mailer, cfg: cfg, isNil: isNil}, nil
}

func (s *service) SendCode(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	code, err := security.RandomDigits(codeLength)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate verification code")
	}

	key := s.store.VerificationKey(email)
	if err := s.store.Set(ctx, key, code, s.cfg.CodeTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store verification code")
	}

	if err := s.mailer.SendVerificationCode(ctx, email, s.cfg.SenderName, code); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send verification code")
	}
	return nil
}

func (s *service) VerifyCode(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email and code are required")
	}

	key := s.store.VerificationKey(email)
	stored, err := s.store.Get(ctx, key)
	if err != nil {
		if s.isNil(err) {
			return pkgerrors.New(pkgerrors.CodeValidation, "verification code expired or not requested")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load verification code")
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "verification code does not match")
	}

	if err := s.store.Del(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume verification code")
	}
	return nil
}
