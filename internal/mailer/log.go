package mailer

import (
	"context"
	"log/slog"
)

// LogMailer logs emails instead of sending them.
// Used in development when no SMTP transport is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLog creates a LogMailer.
func NewLog(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("component", "mailer.log")}
}

func (m *LogMailer) SendVerificationLink(ctx context.Context, to string, data VerificationData) error {
	return m.log(ctx, kindVerificationLink, to, data)
}

func (m *LogMailer) SendTipSent(ctx context.Context, to string, data TipData) error {
	return m.log(ctx, kindTipSent, to, data)
}

func (m *LogMailer) SendTipReceived(ctx context.Context, to string, data TipData) error {
	return m.log(ctx, kindTipReceived, to, data)
}

func (m *LogMailer) log(ctx context.Context, kind, to string, data any) error {
	subject, body, err := render(kind, data)
	if err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "email not sent (SMTP not configured)",
		"kind", kind,
		"to", to,
		"subject", subject,
		"body_length", len(body),
	)

	return nil
}
