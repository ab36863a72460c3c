package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
)

var (
	ErrCompanyMismatch = errors.New("forbidden: company mismatch")
	ErrRoleMismatch    = errors.New("forbidden: role mismatch")
)

// DashboardAccess checks that company and role are the caller's own, ignoring case.
func DashboardAccess(p *entity.Principal, company, role string) error {
	if p == nil || !strings.EqualFold(strings.TrimSpace(p.Company), strings.TrimSpace(company)) {
		return ErrCompanyMismatch
	}
	if !strings.EqualFold(strings.TrimSpace(p.Role), strings.TrimSpace(role)) {
		return ErrRoleMismatch
	}
	return nil
}

// DashboardGreeting is the message shown on a dashboard the caller may open.
func DashboardGreeting(p *entity.Principal, company, role string) string {
	return fmt.Sprintf("Welcome %s to %s - %s dashboard", p.Name, company, role)
}
