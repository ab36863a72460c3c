package mailer

import "time"

const (
	sendGridHost     = "smtp.sendgrid.net"
	sendGridUsername = "apikey"
	defaultSender    = "no-reply@example.com"
)

// Settings is the mail configuration read once, when a transport is selected.
type Settings struct {
	// Explicit SMTP relay
	Host   string
	Port   int
	Secure bool
	User   string
	Pass   string

	// Provider keys
	SendGridAPIKey string
	MailgunDomain  string
	MailgunAPIKey  string

	// Forced sender address; required in production
	From string

	Production     bool
	MaxConns       int
	SendTimeout    time.Duration
	PreviewBaseURL string
}

// Sender returns the configured sender, falling back to a placeholder outside
// production. ok is false when production has no sender configured.
func (s Settings) Sender() (from string, ok bool) {
	if s.From != "" {
		return s.From, true
	}
	if s.Production {
		return "", false
	}
	return defaultSender, true
}
