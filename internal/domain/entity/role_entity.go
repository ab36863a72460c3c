package entity

import "strings"

// Company is a company type users sign up under, with the roles it offers.
type Company struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

var companies = []Company{
	{Name: "Factory", Roles: []string{"Company Owner", "Admin"}},
	{Name: "Shipper", Roles: []string{"Company Owner", "Admin", "Documentation Department", "Accounts Department"}},
	{Name: "Transporter", Roles: []string{"Company Owner", "Admin", "Truck Driver"}},
	{Name: "Clearance Agent", Roles: []string{"Company Owner", "Admin", "Documentation Department", "Accounts Department"}},
}

// Companies returns a copy of the company catalog.
func Companies() []Company {
	out := make([]Company, len(companies))
	for i, c := range companies {
		out[i] = Company{Name: c.Name, Roles: append([]string(nil), c.Roles...)}
	}
	return out
}

// CanonicalRole returns the catalog spelling of company and role, matched
// case-insensitively. ok is false when either is unknown.
func CanonicalRole(company, role string) (string, string, bool) {
	for _, c := range companies {
		if !strings.EqualFold(c.Name, strings.TrimSpace(company)) {
			continue
		}
		for _, r := range c.Roles {
			if strings.EqualFold(r, strings.TrimSpace(role)) {
				return c.Name, r, true
			}
		}
		return "", "", false
	}
	return "", "", false
}
