package domain

import (
	"time"
)

// Chapter is a regional fan group in the global network directory.
type Chapter struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	ContactEmail string    `json:"contact_email"`
	MemberCount  int       `json:"member_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
