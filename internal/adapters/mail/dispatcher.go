// Package mail relays quotation emails through an SMTP submission endpoint.
package mail

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/quotecraft/quotecraft/internal/domain"
	"github.com/quotecraft/quotecraft/internal/platform/config"
	"github.com/quotecraft/quotecraft/internal/ports"
)

// relay is the subset of the SMTP client the dispatcher uses.
// It exists so tests can script relay behavior without a live server.
type relay interface {
	DialWithContext(ctx context.Context) error
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
	Close() error
}

// Dispatcher implements ports.Mailer over go-mail.
type Dispatcher struct {
	relay  relay
	from   string
	logger *slog.Logger
}

var (
	_ ports.Mailer        = (*Dispatcher)(nil)
	_ ports.HealthChecker = (*Dispatcher)(nil)
)

// NewDispatcher builds the SMTP client. The authenticated account is also
// the envelope sender; only the display name varies per message.
func NewDispatcher(cfg config.MailConfig, logger *slog.Logger) (*Dispatcher, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTimeout(cfg.Timeout),
	}

	if cfg.Port == config.DefaultSMTPPort {
		opts = append(opts, gomail.WithSSL())
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		relay:  client,
		from:   cfg.Username,
		logger: logger,
	}, nil
}

// Send relays one message. Either the relay accepted the send or it did
// not; there is no partial-send state to report.
func (d *Dispatcher) Send(ctx context.Context, msg ports.Message) error {
	m := gomail.NewMsg()

	if err := m.FromFormat(msg.FromName, d.from); err != nil {
		return domain.NewEmailError("invalid sender address", err)
	}

	if err := m.To(msg.To); err != nil {
		return domain.NewValidationError("to", "must be a valid email address")
	}

	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)

	for _, att := range msg.Attachments {
		err := m.AttachReader(att.Filename, bytes.NewReader(att.Content),
			gomail.WithFileContentType(gomail.ContentType(att.ContentType)))
		if err != nil {
			return domain.NewEmailError("attaching document failed", err)
		}
	}

	start := time.Now()

	if err := d.relay.DialAndSendWithContext(ctx, m); err != nil {
		return domain.NewEmailError("mail relay rejected the message", err)
	}

	d.logger.InfoContext(ctx, "email dispatched",
		slog.String("recipient", msg.To),
		slog.Int("attachments", len(msg.Attachments)),
		slog.Duration("duration", time.Since(start)),
	)

	return nil
}

// Name identifies this component in health check responses.
func (d *Dispatcher) Name() string {
	return "mail-relay"
}

// Check dials the relay and closes the connection again.
func (d *Dispatcher) Check(ctx context.Context) error {
	if err := d.relay.DialWithContext(ctx); err != nil {
		return err
	}

	return d.relay.Close()
}
