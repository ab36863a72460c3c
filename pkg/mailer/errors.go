package mailer

import "errors"

var (
	// ErrInvalidRecipient is returned when the recipient is not a plausible address.
	ErrInvalidRecipient = errors.New("valid recipient 'to' required")
	// ErrConfiguration is returned when no transport or sender can be used.
	ErrConfiguration = errors.New("mail configuration error")
	// ErrMailProvider wraps failures raised by a transport while sending.
	ErrMailProvider = errors.New("mail provider error")
)
