package application

import (
	"errors"

	"github.com/oksasatya/tradedocs-portal/pkg/mailer"
)

var (
	ErrInvalidRecipient = mailer.ErrInvalidRecipient
	ErrMissingTemplate  = errors.New("templateId is required")
	ErrTemplateNotFound = errors.New("template not found")
	ErrForbidden        = errors.New("not authorized to send templates")
	ErrNoContent        = errors.New("no content to send")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrUnknownRole        = errors.New("unknown company or role")
)
