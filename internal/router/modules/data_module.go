package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/tradedocs-portal/internal/interface/http"
	"github.com/oksasatya/tradedocs-portal/internal/interface/middleware"
	"github.com/oksasatya/tradedocs-portal/pkg/helpers"
)

// DataModule wires the company catalog and role dashboards.
type DataModule struct {
	Handler  *handlers.DataHandler
	JWT      *helpers.JWTManager
	Sessions middleware.SessionChecker
}

func NewDataModule(h *handlers.DataHandler, jwt *helpers.JWTManager, sessions middleware.SessionChecker) *DataModule {
	return &DataModule{Handler: h, JWT: jwt, Sessions: sessions}
}

func (m *DataModule) Register(rg *gin.RouterGroup) {
	rg.GET("/data/roles", m.Handler.Roles)
	rg.GET("/data/:company/:role", middleware.Auth(m.JWT, m.Sessions), m.Handler.Dashboard)
}
