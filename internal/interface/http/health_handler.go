package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/tradedocs-portal/pkg/mailer"
)

// TransportReporter reports the selected mail transport, if any.
type TransportReporter interface {
	Current() mailer.Transport
}

type HealthHandler struct {
	Mail TransportReporter
}

// Health GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{"ok": true}
	if h.Mail != nil {
		if t := h.Mail.Current(); t != nil {
			body["mailTransport"] = t.Name()
		}
	}
	c.JSON(http.StatusOK, body)
}
