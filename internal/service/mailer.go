package service

import (
	"context"
	"log/slog"
)

// Mailer delivers account emails. No delivery system exists here; the log
// mailer records what would have been sent so the token flows stay testable.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
	SendEmailVerification(ctx context.Context, email, token string) error
}

// LogMailer writes outgoing mail to the log instead of sending it.
type LogMailer struct {
	log *slog.Logger
}

func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.log.Info("password reset requested", "email", email, "token", token)
	return nil
}

func (m *LogMailer) SendEmailVerification(_ context.Context, email, token string) error {
	m.log.Info("email verification requested", "email", email, "token", token)
	return nil
}
