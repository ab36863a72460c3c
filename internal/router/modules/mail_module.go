package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/tradedocs-portal/internal/container"
	handlers "github.com/oksasatya/tradedocs-portal/internal/interface/http"
	"github.com/oksasatya/tradedocs-portal/internal/interface/middleware"
)

// MailModule serves dev mailbox previews and the health endpoint.
type MailModule struct {
	Preview *handlers.MailboxHandler
	Health  *handlers.HealthHandler
}

func NewMailModule(preview *handlers.MailboxHandler, health *handlers.HealthHandler) *MailModule {
	return &MailModule{Preview: preview, Health: health}
}

func (m *MailModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Health.Health)
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/mail/preview/:id", rl, m.Preview.Preview)
}
