package entity

import (
	"time"
)

// User is the aggregate root for accounts. Every user belongs to exactly one
// company type and holds one role within it.
//
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID          string
	Email       string
	Password    string
	Name        string
	CompanyName string
	Role        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Principal is the authenticated caller as read from a verified access token.
type Principal struct {
	ID      string `json:"id"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Company string `json:"company"`
	Role    string `json:"role"`
}
