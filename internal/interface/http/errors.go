package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/tradedocs-portal/internal/application"
	"github.com/oksasatya/tradedocs-portal/pkg/helpers"
	"github.com/oksasatya/tradedocs-portal/pkg/mailer"
	"github.com/oksasatya/tradedocs-portal/pkg/response"
)

// statusFor maps application and mailer errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrInvalidRecipient),
		errors.Is(err, application.ErrMissingTemplate),
		errors.Is(err, application.ErrNoContent),
		errors.Is(err, application.ErrUnknownRole),
		errors.Is(err, application.ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrForbidden),
		errors.Is(err, application.ErrCompanyMismatch),
		errors.Is(err, application.ErrRoleMismatch):
		return http.StatusForbidden
	case errors.Is(err, application.ErrTemplateNotFound),
		errors.Is(err, application.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, mailer.ErrConfiguration),
		errors.Is(err, mailer.ErrMailProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an error envelope. Unexpected errors are logged and
// reported without detail.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
		msg = "internal server error"
	}
	response.Error(c, status, msg, nil)
}
