package verification

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/glassph/glass-backend/pkg/config"
	pkgerrors "github.com/glassph/glass-backend/pkg/errors"
)

var errStubNil = errors.New("stub: key missing")

type stubCodeStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newStubCodeStore() *stubCodeStore {
	return &stubCodeStore{
		values: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (s *stubCodeStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.values[key] = value.(string)
	s.ttls[key] = ttl
	return nil
}

func (s *stubCodeStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", errStubNil
	}
	return value, nil
}

func (s *stubCodeStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *stubCodeStore) VerificationKey(email string) string {
	return "verification:" + strings.ToLower(email)
}

type recordingMailer struct {
	email  string
	sender string
	code   string
	calls  int
}

func (m *recordingMailer) SendVerificationCode(ctx context.Context, email, senderName, code string) error {
	m.email = email
	m.sender = senderName
	m.code = code
	m.calls++
	return nil
}

func newVerificationService(t *testing.T, store *stubCodeStore, mailer Mailer) Service {
	t.Helper()

	svc, err := NewService(store, mailer, config.VerificationConfig{
		CodeTTL:    5 * time.Minute,
		SenderName: "Glass",
	}, func(err error) bool { return errors.Is(err, errStubNil) })
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestSendCodeStoresAndMails(t *testing.T) {
	store := newStubCodeStore()
	mailer := &recordingMailer{}
	svc := newVerificationService(t, store, mailer)

	if err := svc.SendCode(context.Background(), "Buyer@Example.com"); err != nil {
		t.Fatalf("SendCode: %v", err)
	}

	key := store.VerificationKey("buyer@example.com")
	code, ok := store.values[key]
	if !ok {
		t.Fatalf("code not stored")
	}
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			t.Fatalf("non-digit character in code %q", code)
		}
	}
	if store.ttls[key] != 5*time.Minute {
		t.Fatalf("ttl = %v, want 5m", store.ttls[key])
	}
	if mailer.calls != 1 || mailer.code != code || mailer.email != "buyer@example.com" {
		t.Fatalf("mailer not invoked with stored code: %+v", mailer)
	}
	if mailer.sender != "Glass" {
		t.Fatalf("sender = %q", mailer.sender)
	}
}

func TestVerifyCodeConsumesOnSuccess(t *testing.T) {
	store := newStubCodeStore()
	svc := newVerificationService(t, store, &recordingMailer{})

	key := store.VerificationKey("buyer@example.com")
	store.values[key] = "123456"

	if err := svc.VerifyCode(context.Background(), "buyer@example.com", "123456"); err != nil {
		t.Fatalf("VerifyCode: %v", err)
	}
	if _, ok := store.values[key]; ok {
		t.Fatalf("code must be deleted after successful verification")
	}

	// second use fails: one-shot semantics
	err := svc.VerifyCode(context.Background(), "buyer@example.com", "123456")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR on reuse, got %v", err)
	}
}

func TestVerifyCodeMismatchKeepsCode(t *testing.T) {
	store := newStubCodeStore()
	svc := newVerificationService(t, store, &recordingMailer{})

	key := store.VerificationKey("buyer@example.com")
	store.values[key] = "123456"

	err := svc.VerifyCode(context.Background(), "buyer@example.com", "654321")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if _, ok := store.values[key]; !ok {
		t.Fatalf("mismatch must not consume the stored code")
	}
}

func TestVerifyCodeExpired(t *testing.T) {
	store := newStubCodeStore()
	svc := newVerificationService(t, store, &recordingMailer{})

	err := svc.VerifyCode(context.Background(), "buyer@example.com", "123456")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for missing code, got %v", err)
	}
}

func TestVerifyCodeRequiresInput(t *testing.T) {
	store := newStubCodeStore()
	svc := newVerificationService(t, store, &recordingMailer{})

	for _, tc := range []struct{ email, code string }{
		{"", "123456"},
		{"buyer@example.com", ""},
		{"  ", "  "},
	} {
		err := svc.VerifyCode(context.Background(), tc.email, tc.code)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("email=%q code=%q: expected VALIDATION_ERROR, got %v", tc.email, tc.code, err)
		}
	}
}
