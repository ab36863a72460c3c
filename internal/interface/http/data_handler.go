package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/tradedocs-portal/internal/application"
	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	"github.com/oksasatya/tradedocs-portal/internal/interface/middleware"
	"github.com/oksasatya/tradedocs-portal/pkg/response"
)

type DataHandler struct {
	Logger *logrus.Logger
}

func NewDataHandler(logger *logrus.Logger) *DataHandler {
	return &DataHandler{Logger: logger}
}

// Roles GET /api/data/roles
func (h *DataHandler) Roles(c *gin.Context) {
	companies := entity.Companies()
	c.JSON(http.StatusOK, gin.H{"ok": true, "companies": companies})
}

// Dashboard GET /api/data/:company/:role
func (h *DataHandler) Dashboard(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	company, role := c.Param("company"), c.Param("role")
	if err := application.DashboardAccess(p, company, role); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"company": p.Company,
		"role":    p.Role,
	}, application.DashboardGreeting(p, company, role), nil)
}
