package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Mailer dispatches run reports out-of-band via SMTP. It is a thin
// collaborator: its failures are logged by the caller and must never
// influence the run's exit code.
type Mailer struct {
	cfg Config
	log *zap.Logger
}

// NewMailer creates a mailer from configuration.
func NewMailer(cfg Config, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// Send delivers the subject and body to the configured recipients.
// A disabled mailer returns nil without doing anything.
func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	if !m.cfg.Enabled {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("notification sender: %w", err)
	}

	recipients := strings.Split(m.cfg.To, ",")
	for i, r := range recipients {
		recipients[i] = strings.TrimSpace(r)
	}
	if err := msg.To(recipients...); err != nil {
		return fmt.Errorf("notification recipients: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("notification client: %w", err)
	}

	m.log.Debug("sending notification",
		zap.String("host", m.cfg.Host),
		zap.String("to", m.cfg.To),
		zap.String("subject", subject))

	return client.DialAndSendWithContext(ctx, msg)
}
