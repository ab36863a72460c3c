package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"golang.org/x/sync/semaphore"
)

// Transport delivers a prepared message. Implementations must be safe for
// concurrent use.
type Transport interface {
	Name() string
	Send(ctx context.Context, msg *Message) (*Result, error)
	Verify(ctx context.Context) error
}

// SMTPConfig holds SMTP connection parameters.
type SMTPConfig struct {
	Name     string // label reported in results, e.g. "smtp" or "sendgrid"
	Host     string
	Port     int
	Secure   bool // implicit TLS; otherwise STARTTLS when offered
	Username string
	Password string
	// InsecureTLS disables certificate validation. Only set outside production.
	InsecureTLS bool
	MaxConns    int
	Timeout     time.Duration
}

// SMTPTransport sends through an SMTP relay using go-mail. Each send dials its
// own connection; at most MaxConns connections are open at once.
type SMTPTransport struct {
	cfg   SMTPConfig
	conns *semaphore.Weighted
}

// NewSMTPTransport creates an SMTP transport. It does not dial.
func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	if cfg.Name == "" {
		cfg.Name = "smtp"
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPTransport{cfg: cfg, conns: semaphore.NewWeighted(int64(cfg.MaxConns))}
}

func (t *SMTPTransport) Name() string { return t.cfg.Name }

// Config returns a copy of the connection parameters.
func (t *SMTPTransport) Config() SMTPConfig { return t.cfg }

// Send sends msg over a fresh SMTP connection.
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) (*Result, error) {
	m, err := buildMsg(msg)
	if err != nil {
		return nil, err
	}

	if err := t.conns.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer t.conns.Release(1)

	client, err := mail.NewClient(t.cfg.Host, t.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	var id string
	if ids := m.GetGenHeader(mail.HeaderMessageID); len(ids) > 0 {
		id = ids[0]
	}
	return &Result{
		Accepted:  []string{msg.To},
		MessageID: id,
		Transport: t.cfg.Name,
		SentAt:    time.Now().UTC(),
	}, nil
}

// Verify dials and authenticates without sending anything.
func (t *SMTPTransport) Verify(ctx context.Context) error {
	client, err := mail.NewClient(t.cfg.Host, t.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	return client.Close()
}

func (t *SMTPTransport) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(t.cfg.Port),
		mail.WithTimeout(t.cfg.Timeout),
		mail.WithTLSConfig(&tls.Config{
			ServerName:         t.cfg.Host,
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: t.cfg.InsecureTLS, //nolint:gosec // relaxed outside production only
		}),
	}
	if t.cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if t.cfg.Username != "" {
		opts = append(opts,
			mail.WithUsername(t.cfg.Username),
			mail.WithPassword(t.cfg.Password),
			mail.WithSMTPAuth(mail.SMTPAuthAutoDiscover),
		)
	}
	return opts
}

func buildMsg(msg *Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	m.Subject(msg.Subject)
	m.SetMessageID()
	m.SetDate()

	switch {
	case msg.HTML != "" && msg.Text != "":
		m.SetBodyString(mail.TypeTextPlain, msg.Text)
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	case msg.HTML != "":
		m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	default:
		m.SetBodyString(mail.TypeTextPlain, msg.Text)
	}

	if a := msg.Attachment; a != nil {
		if err := m.AttachReader(a.Filename, bytes.NewReader(a.Content),
			mail.WithFileContentType(mail.ContentType(a.ContentType))); err != nil {
			return nil, fmt.Errorf("failed to attach file %s: %w", a.Filename, err)
		}
	}
	return m, nil
}
