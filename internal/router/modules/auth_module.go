package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/tradedocs-portal/internal/container"
	handlers "github.com/oksasatya/tradedocs-portal/internal/interface/http"
	"github.com/oksasatya/tradedocs-portal/internal/interface/middleware"
	"github.com/oksasatya/tradedocs-portal/pkg/helpers"
)

// AuthModule wires account routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: POST /api/auth/logout, GET /api/auth/me
type AuthModule struct {
	Handler  *handlers.UserHandler
	JWT      *helpers.JWTManager
	Sessions middleware.SessionChecker
}

func NewAuthModule(h *handlers.UserHandler, jwt *helpers.JWTManager, sessions middleware.SessionChecker) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Sessions: sessions}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.JWT, m.Sessions))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
	}
}
