package mailer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Selector picks one transport per process and keeps it.
//
// Precedence, evaluated on first use only:
//  1. explicit SMTP host
//  2. provider API key (SendGrid SMTP relay, then Mailgun)
//  3. disposable dev mailbox, outside production
//  4. ErrConfiguration
//
// Concurrent first callers share a single initialization. A failed selection
// is not cached, so the next call tries again.
type Selector struct {
	load   func() Settings
	logger *logrus.Logger
	store  MailboxStore
	verify bool

	mu      sync.RWMutex
	current Transport
	group   singleflight.Group
}

// SelectorOption customizes a Selector.
type SelectorOption func(*Selector)

// WithMailboxStore sets where the dev mailbox keeps captured messages.
func WithMailboxStore(store MailboxStore) SelectorOption {
	return func(s *Selector) { s.store = store }
}

// WithoutVerify disables the background connection check after selection.
func WithoutVerify() SelectorOption {
	return func(s *Selector) { s.verify = false }
}

// NewSelector creates a Selector that reads its settings through load.
func NewSelector(load func() Settings, logger *logrus.Logger, opts ...SelectorOption) *Selector {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Selector{load: load, logger: logger, verify: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transport returns the memoized transport, selecting it on first use.
func (s *Selector) Transport(ctx context.Context) (Transport, error) {
	if t := s.cached(); t != nil {
		return t, nil
	}
	v, err, _ := s.group.Do("transport", func() (any, error) {
		if t := s.cached(); t != nil {
			return t, nil
		}
		t, err := s.build(s.load())
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.current = t
		s.mu.Unlock()
		if s.verify {
			go s.verifyAsync(t)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Transport), nil
}

// Current returns the selected transport without triggering selection.
func (s *Selector) Current() Transport {
	return s.cached()
}

// Mailbox returns the dev mailbox when it is the selected transport.
func (s *Selector) Mailbox() (*Mailbox, bool) {
	mb, ok := s.cached().(*Mailbox)
	return mb, ok
}

func (s *Selector) cached() Transport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Selector) build(st Settings) (Transport, error) {
	switch {
	case st.Host != "":
		s.logger.WithFields(logrus.Fields{"host": st.Host, "port": st.Port, "secure": st.Secure}).Info("using SMTP host for mail")
		return NewSMTPTransport(SMTPConfig{
			Name:        "smtp",
			Host:        st.Host,
			Port:        st.Port,
			Secure:      st.Secure,
			Username:    st.User,
			Password:    st.Pass,
			InsecureTLS: !st.Production,
			MaxConns:    st.MaxConns,
			Timeout:     st.SendTimeout,
		}), nil

	case st.SendGridAPIKey != "":
		user := st.User
		if user == "" {
			user = sendGridUsername
		}
		s.logger.Info("using SendGrid SMTP relay for mail")
		return NewSMTPTransport(SMTPConfig{
			Name:        "sendgrid",
			Host:        sendGridHost,
			Port:        st.Port,
			Username:    user,
			Password:    st.SendGridAPIKey,
			InsecureTLS: !st.Production,
			MaxConns:    st.MaxConns,
			Timeout:     st.SendTimeout,
		}), nil

	case st.MailgunAPIKey != "" && st.MailgunDomain != "":
		s.logger.WithField("domain", st.MailgunDomain).Info("using Mailgun API for mail")
		return NewMailgun(st.MailgunDomain, st.MailgunAPIKey), nil

	case !st.Production:
		store := s.store
		if store == nil {
			store = NewMemoryMailbox(24 * time.Hour)
		}
		s.logger.Info("using disposable dev mailbox for mail; messages are not delivered")
		return NewMailbox(store, st.PreviewBaseURL), nil
	}
	return nil, fmt.Errorf("%w: no mail transport configured (set MAIL_HOST or SENDGRID_API_KEY)", ErrConfiguration)
}

func (s *Selector) verifyAsync(t Transport) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := t.Verify(ctx); err != nil {
		s.logger.WithError(err).WithField("transport", t.Name()).Warn("mail transport verify failed")
		return
	}
	s.logger.WithField("transport", t.Name()).Info("mail transport verified")
}
