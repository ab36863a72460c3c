package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/tradedocs-portal/internal/application"
	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	"github.com/oksasatya/tradedocs-portal/internal/interface/middleware"
	"github.com/oksasatya/tradedocs-portal/pkg/helpers"
	"github.com/oksasatya/tradedocs-portal/pkg/response"
	"github.com/oksasatya/tradedocs-portal/pkg/validation"
)

type UserHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	CompanyName string `json:"companyName" binding:"required"`
	Role        string `json:"role" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
	Role        string `json:"role"`
}

func viewOf(u *entity.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, CompanyName: u.CompanyName, Role: u.Role}
}

// Register POST /api/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		CompanyName: req.CompanyName,
		Role:        req.Role,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetAccess(c, res.Token, res.TokenExpiry)
	response.Success(c, http.StatusCreated, gin.H{"user": viewOf(res.User), "token": res.Token}, "registered", gin.H{"expires_at": res.TokenExpiry})
}

// Login POST /api/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetAccess(c, res.Token, res.TokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"user": viewOf(res.User), "token": res.Token}, "login successful", gin.H{"expires_at": res.TokenExpiry})
}

// Logout POST /api/auth/logout
func (h *UserHandler) Logout(c *gin.Context) {
	if claims, ok := middleware.ClaimsFrom(c); ok {
		if err := h.Svc.Logout(c.Request.Context(), claims); err != nil {
			helpers.LogWarn(h.Logger, "logout: session delete failed", err, logrus.Fields{"user_id": claims.UserID})
		}
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Me GET /api/auth/me
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, viewOf(u), "profile", nil)
}
