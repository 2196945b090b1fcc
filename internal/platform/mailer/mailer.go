// Package mailer implements the SMTP notification transport used to
// deliver idle-plan reminders.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/studyloop/planwatch/internal/config"
)

// Mailer sends reminder emails over SMTP. When no mail host or sender is
// configured, the Mailer runs disabled: sends are logged and reported as
// successful so the rest of the engine keeps functioning in environments
// without an SMTP server.
type Mailer struct {
	client *mail.Client
	from   string
	logger *slog.Logger
}

// New builds a Mailer from the mail configuration. A configuration with an
// empty host or sender yields a disabled Mailer, not an error.
func New(cfg config.MailConfig, log *slog.Logger) (*Mailer, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "mailer"))

	if !cfg.Enabled() {
		log.Warn("mail transport not configured, reminders will be logged and dropped")
		return &Mailer{logger: log}, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating mail client: %w", err)
	}

	log.Info("mail transport configured",
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port),
		slog.String("from", cfg.From))
	return &Mailer{client: client, from: cfg.From, logger: log}, nil
}

// Enabled reports whether the Mailer has a configured SMTP client.
func (m *Mailer) Enabled() bool {
	return m.client != nil
}

// Send delivers a plain-text email. A disabled Mailer logs the message and
// returns nil.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if !m.Enabled() {
		m.logger.Info("mail transport disabled, dropping message",
			slog.String("to", to),
			slog.String("subject", subject))
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("setting sender %q: %w", m.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}
