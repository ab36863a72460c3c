package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// TransportSource yields the transport used for a send.
type TransportSource interface {
	Transport(ctx context.Context) (Transport, error)
}

// Outbound is what callers may ask to send. There is deliberately no From.
type Outbound struct {
	To         string
	Subject    string
	HTML       string
	Text       string
	Attachment *Attachment
}

// DispatcherConfig holds the sender policy.
type DispatcherConfig struct {
	From        string
	Production  bool
	SendTimeout time.Duration
}

// Dispatcher sends outbound documents through the selected transport with the
// server configured sender.
type Dispatcher struct {
	source TransportSource
	cfg    DispatcherConfig
	logger *logrus.Logger
}

func NewDispatcher(source TransportSource, cfg DispatcherConfig, logger *logrus.Logger) *Dispatcher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 15 * time.Second
	}
	return &Dispatcher{source: source, cfg: cfg, logger: logger}
}

// Send delivers out. Pre-dispatch failures are ErrInvalidRecipient or
// ErrConfiguration. A transport's recipient rejection stays ErrInvalidRecipient;
// anything else it raises is wrapped in ErrMailProvider.
func (d *Dispatcher) Send(ctx context.Context, out Outbound) (*Result, error) {
	if !strings.Contains(out.To, "@") {
		return nil, ErrInvalidRecipient
	}
	from, ok := Settings{From: d.cfg.From, Production: d.cfg.Production}.Sender()
	if !ok {
		return nil, fmt.Errorf("%w: MAIL_FROM must be configured in production", ErrConfiguration)
	}

	t, err := d.source.Transport(ctx)
	if err != nil {
		if errors.Is(err, ErrConfiguration) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	msg := &Message{
		From:       from,
		To:         out.To,
		Subject:    out.Subject,
		HTML:       out.HTML,
		Text:       out.Text,
		Attachment: out.Attachment,
	}

	c, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
	defer cancel()

	res, err := t.Send(c, msg)
	if err != nil {
		if errors.Is(err, ErrInvalidRecipient) {
			d.logger.WithError(err).WithField("transport", t.Name()).Warn("transport rejected recipient")
			return nil, err
		}
		recordFailure(t.Name())
		d.logger.WithError(err).WithFields(logrus.Fields{"transport": t.Name(), "to": out.To}).Error("send mail failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: send timed out after %s", ErrMailProvider, d.cfg.SendTimeout)
		}
		return nil, fmt.Errorf("%w: %v", ErrMailProvider, err)
	}
	recordSent(t.Name())
	d.logger.WithFields(logrus.Fields{"transport": t.Name(), "to": out.To, "message_id": res.MessageID}).Info("mail sent")
	return res, nil
}
