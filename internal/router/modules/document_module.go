package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/tradedocs-portal/internal/container"
	handlers "github.com/oksasatya/tradedocs-portal/internal/interface/http"
	"github.com/oksasatya/tradedocs-portal/internal/interface/middleware"
	"github.com/oksasatya/tradedocs-portal/pkg/helpers"
)

// DocumentModule wires template browsing and document sending.
// Public: GET /api/templates, GET /api/templates/search
// Protected: POST /api/send, POST /api/templates/send
type DocumentModule struct {
	Handler  *handlers.TemplateHandler
	JWT      *helpers.JWTManager
	Sessions middleware.SessionChecker
}

func NewDocumentModule(h *handlers.TemplateHandler, jwt *helpers.JWTManager, sessions middleware.SessionChecker) *DocumentModule {
	return &DocumentModule{Handler: h, JWT: jwt, Sessions: sessions}
}

func (m *DocumentModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	browse := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/templates", browse, m.Handler.List)
	rg.GET("/templates/search", browse, m.Handler.Search)

	send := rg.Group("/")
	send.Use(middleware.Auth(m.JWT, m.Sessions))
	send.Use(middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		send.POST("/send", m.Handler.Send)
		send.POST("/templates/send", m.Handler.Send)
	}
}
