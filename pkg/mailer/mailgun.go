package mailer

import (
	"context"
	"errors"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends through the Mailgun HTTP API.
type Mailgun struct {
	Domain string
	APIKey string
	client *mg.MailgunImpl
}

func NewMailgun(domain, apiKey string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, client: mg.NewMailgun(domain, apiKey)}
}

func (m *Mailgun) Name() string { return "mailgun" }

// Send sends msg via Mailgun. The HTML part is optional.
func (m *Mailgun) Send(ctx context.Context, msg *Message) (*Result, error) {
	message := m.client.NewMessage(msg.From, msg.Subject, msg.Text, msg.To)
	if msg.HTML != "" {
		message.SetHtml(msg.HTML)
	}
	if a := msg.Attachment; a != nil {
		message.AddBufferAttachment(a.Filename, a.Content)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, id, err := m.client.Send(c, message)
	if err != nil {
		return nil, err
	}
	return &Result{
		Accepted:  []string{msg.To},
		MessageID: id,
		Transport: m.Name(),
		SentAt:    time.Now().UTC(),
	}, nil
}

// Verify only checks that credentials are present; the HTTP API has no session
// to open ahead of a send.
func (m *Mailgun) Verify(context.Context) error {
	if m.Domain == "" || m.APIKey == "" {
		return errors.New("mailgun domain and api key are required")
	}
	return nil
}
