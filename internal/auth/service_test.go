package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/glassph/glass-backend/internal/activity"
	"github.com/glassph/glass-backend/internal/users"
	pkgauth "github.com/glassph/glass-backend/pkg/auth"
	"github.com/glassph/glass-backend/pkg/clock"
	"github.com/glassph/glass-backend/pkg/config"
	"github.com/glassph/glass-backend/pkg/db/models"
	"github.com/glassph/glass-backend/pkg/enums"
	pkgerrors "github.com/glassph/glass-backend/pkg/errors"
	"github.com/glassph/glass-backend/pkg/security"
	"gorm.io/gorm"
)

var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     8,
	ArgonKeyLen:      16,
}

var testJWTCfg = config.JWTConfig{
	Secret:            "test-secret-not-for-production",
	Issuer:            "glass-test",
	ExpirationMinutes: 60,
}

type stubUsersRepo struct {
	user    *models.User
	admin   *models.Admin
	created *models.User
}

func (s *stubUsersRepo) WithTx(tx *gorm.DB) users.Repository {
	return s
}

func (s *stubUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.created = user
	return user, nil
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != strings.ToLower(email) {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUsersRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.user != nil && s.user.Email == strings.ToLower(email), nil
}

func (s *stubUsersRepo) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if s.admin == nil || s.admin.Email != strings.ToLower(email) {
		return nil, gorm.ErrRecordNotFound
	}
	return s.admin, nil
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

type stubVerification struct {
	verified map[string]string
	err      error
}

func (s *stubVerification) SendCode(ctx context.Context, email string) error {
	return nil
}

func (s *stubVerification) VerifyCode(ctx context.Context, email, code string) error {
	if s.err != nil {
		return s.err
	}
	if s.verified[email] != code {
		return pkgerrors.New(pkgerrors.CodeValidation, "verification code does not match")
	}
	return nil
}

type stubSessions struct {
	established map[string]string
	revoked     []string
}

func (s *stubSessions) Establish(ctx context.Context, tokenID, email string) error {
	if s.established == nil {
		s.established = make(map[string]string)
	}
	s.established[tokenID] = email
	return nil
}

func (s *stubSessions) Revoke(ctx context.Context, tokenID string) error {
	s.revoked = append(s.revoked, tokenID)
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type authFixture struct {
	svc      Service
	users    *stubUsersRepo
	activity *stubActivityRepo
	verify   *stubVerification
	sessions *stubSessions
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users:    &stubUsersRepo{},
		activity: &stubActivityRepo{},
		verify:   &stubVerification{verified: map[string]string{"buyer@example.com": "123456"}},
		sessions: &stubSessions{},
	}

	// minted tokens are parsed back with real-time expiry checks, so the
	// fixture clock pins the current instant rather than a historic one
	now := time.Now()
	svc, err := NewService(
		f.users,
		f.activity,
		f.verify,
		f.sessions,
		stubTxRunner{},
		clock.Fixed(now),
		testJWTCfg,
		testPasswordCfg,
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	f.svc = svc
	return f
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordCfg)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return hash
}

func TestRegisterCreatesUserAndActivity(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.Register(context.Background(), RegisterInput{
		Email:    "Buyer@Example.com",
		Password: "hunter2hunter2",
		Code:     "123456",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if f.users.created == nil {
		t.Fatalf("user not created")
	}
	if f.users.created.Email != "buyer@example.com" {
		t.Fatalf("email not normalized: %q", f.users.created.Email)
	}
	if f.users.created.PasswordHash == "hunter2hunter2" || f.users.created.PasswordHash == "" {
		t.Fatalf("password stored without hashing")
	}
	if !f.users.created.IsActive {
		t.Fatalf("new accounts must start active")
	}

	if len(f.activity.entries) != 1 || f.activity.entries[0].Action != enums.ActivityActionSignUp {
		t.Fatalf("signup activity not recorded: %+v", f.activity.entries)
	}
}

func TestRegisterRejectsWrongCode(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.Register(context.Background(), RegisterInput{
		Email:    "buyer@example.com",
		Password: "hunter2hunter2",
		Code:     "000000",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if f.users.created != nil {
		t.Fatalf("user must not be created on bad code")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.Register(context.Background(), RegisterInput{
		Email:    "buyer@example.com",
		Password: "short",
		Code:     "123456",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.users.user = &models.User{Email: "buyer@example.com", IsActive: true}

	err := f.svc.Register(context.Background(), RegisterInput{
		Email:    "buyer@example.com",
		Password: "hunter2hunter2",
		Code:     "123456",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestLoginIssuesTokenAndSession(t *testing.T) {
	f := newAuthFixture(t)
	f.users.user = &models.User{
		Email:        "buyer@example.com",
		PasswordHash: hashFor(t, "hunter2hunter2"),
		IsActive:     true,
	}

	result, err := f.svc.Login(context.Background(), "buyer@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.TokenType != "bearer" {
		t.Fatalf("token type %q", result.TokenType)
	}
	if result.ExpiresIn != 3600 {
		t.Fatalf("expires_in = %d, want 3600", result.ExpiresIn)
	}
	if result.Role != enums.ActorRoleUser {
		t.Fatalf("role %q", result.Role)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTCfg, result.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Email != "buyer@example.com" || claims.Role != enums.ActorRoleUser {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if _, ok := f.sessions.established[claims.ID]; !ok {
		t.Fatalf("session not established for jti %q", claims.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.users.user = &models.User{
		Email:        "buyer@example.com",
		PasswordHash: hashFor(t, "hunter2hunter2"),
		IsActive:     true,
	}

	_, err := f.svc.Login(context.Background(), "buyer@example.com", "wrong-password")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), "nobody@example.com", "whatever1")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.users.user = &models.User{
		Email:        "buyer@example.com",
		PasswordHash: hashFor(t, "hunter2hunter2"),
		IsActive:     false,
	}

	_, err := f.svc.Login(context.Background(), "buyer@example.com", "hunter2hunter2")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestAdminLoginIssuesAdminRole(t *testing.T) {
	f := newAuthFixture(t)
	f.users.admin = &models.Admin{
		Email:        "ops@example.com",
		PasswordHash: hashFor(t, "hunter2hunter2"),
	}

	result, err := f.svc.AdminLogin(context.Background(), "ops@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if result.Role != enums.ActorRoleAdmin {
		t.Fatalf("role %q, want admin", result.Role)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newAuthFixture(t)

	if err := f.svc.Logout(context.Background(), "some-jti"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(f.sessions.revoked) != 1 || f.sessions.revoked[0] != "some-jti" {
		t.Fatalf("session not revoked: %+v", f.sessions.revoked)
	}
}

func TestLogoutWithoutToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.Logout(context.Background(), "  ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}
