package domain

import (
	"time"
)

// User represents a registered member of the club.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	AuthProvider  string    `json:"auth_provider,omitempty"`
	ProviderID    string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Auth provider constants.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Role constants define the allowed user roles.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// IsValidRole checks whether the given role string is a valid user role.
func IsValidRole(role string) bool {
	return role == RoleMember || role == RoleAdmin
}
