package verification

import (
	"context"

	"github.com/glassph/glass-backend/pkg/logger"
)

// Mailer delivers verification codes to an email address.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, senderName, code string) error
}

type logMailer struct {
	logg *logger.Logger
}

// NewLogMailer returns a Mailer that writes the code to the structured log
// instead of sending mail. Used in dev and test environments.
func NewLogMailer(logg *logger.Logger) Mailer {
	return &logMailer{logg: logg}
}

func (m *logMailer) SendVerificationCode(ctx context.Context, email, senderName, code string) error {
	ctx = m.logg.WithFields(ctx, map[string]any{
		"email":  email,
		"sender": senderName,
		"code":   code,
	})
	m.logg.Info(ctx, "verification code issued (log mailer)")
	return nil
}
