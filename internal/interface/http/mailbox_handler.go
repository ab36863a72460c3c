package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/tradedocs-portal/pkg/mailer"
	"github.com/oksasatya/tradedocs-portal/pkg/mailer/templates"
	"github.com/oksasatya/tradedocs-portal/pkg/response"
)

// MailboxSource exposes the dev mailbox once it is the selected transport.
type MailboxSource interface {
	Mailbox() (*mailer.Mailbox, bool)
}

type MailboxHandler struct {
	Source  MailboxSource
	AppName string
	Logger  *logrus.Logger
}

func NewMailboxHandler(source MailboxSource, appName string, logger *logrus.Logger) *MailboxHandler {
	return &MailboxHandler{Source: source, AppName: appName, Logger: logger}
}

// Preview GET /api/mail/preview/:id renders a captured message as an HTML page.
func (h *MailboxHandler) Preview(c *gin.Context) {
	mb, ok := h.Source.Mailbox()
	if !ok {
		response.Error(c, http.StatusNotFound, "preview not available", nil)
		return
	}
	msg, err := mb.Preview(c.Request.Context(), c.Param("id"))
	if errors.Is(err, mailer.ErrPreviewNotFound) {
		response.Error(c, http.StatusNotFound, "preview not found", nil)
		return
	}
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	page, err := templates.RenderPreview(h.AppName, msg)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.Header("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; img-src https: data:")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
