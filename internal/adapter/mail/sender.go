package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// ErrNoRecipient is returned when a message has no destination address.
var ErrNoRecipient = errors.New("message has no recipient")

// Message is a rendered HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers rendered messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPOptions configures SMTPSender.
type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender implements Sender via an SMTP relay.
type SMTPSender struct {
	opts   SMTPOptions
	logger *slog.Logger
	dial   func(ctx context.Context, msg *gomail.Msg) error
}

// NewSMTPSender creates SMTP backed sender. A client is dialed per message.
func NewSMTPSender(opts SMTPOptions, logger *slog.Logger) (*SMTPSender, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("smtp host must be provided")
	}
	if opts.From == "" {
		return nil, fmt.Errorf("sender address must be provided")
	}

	clientOpts := []gomail.Option{
		gomail.WithPort(opts.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(opts.Username),
			gomail.WithPassword(opts.Password),
		)
	}

	// Validate options once so misconfiguration fails at startup.
	if _, err := gomail.NewClient(opts.Host, clientOpts...); err != nil {
		return nil, fmt.Errorf("configure smtp client: %w", err)
	}

	s := &SMTPSender{opts: opts, logger: logger}
	s.dial = func(ctx context.Context, msg *gomail.Msg) error {
		client, err := gomail.NewClient(opts.Host, clientOpts...)
		if err != nil {
			return err
		}
		return client.DialAndSendWithContext(ctx, msg)
	}
	return s, nil
}

// Send builds the MIME message and delivers it within ctx.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.build(msg)
	if err != nil {
		return err
	}
	if err := s.dial(ctx, m); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	s.logger.Info("email sent", slog.String("to", msg.To), slog.String("subject", msg.Subject))
	return nil
}

func (s *SMTPSender) build(msg Message) (*gomail.Msg, error) {
	if msg.To == "" {
		return nil, ErrNoRecipient
	}
	m := gomail.NewMsg()
	if err := m.From(s.opts.From); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	return m, nil
}

// LogSender records messages instead of delivering them. It is used when no
// SMTP relay is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates sender that only logs.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	s.logger.Info("email delivery disabled, message logged",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("bytes", len(msg.HTML)),
	)
	return ctx.Err()
}
