// Package mailer delivers the confirmation-code emails. Delivery failure
// is logged, never surfaced to the signup caller.
package mailer

import (
	"context"
	"log/slog"
)

// Mailer sends a plain-text email to the given recipients.
type Mailer interface {
	Send(ctx context.Context, subject, body string, to []string) error
}

// LogMailer writes outgoing mail to the log instead of a wire. Used in
// development when no SMTP host is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, subject, body string, to []string) error {
	m.logger.Info("mail (not sent, SMTP unconfigured)",
		"subject", subject,
		"to", to,
		"body", body,
	)
	return nil
}
