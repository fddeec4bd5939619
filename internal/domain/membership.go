package domain

import (
	"fmt"
	"time"
)

// Membership plan constants.
const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
	PlanStudent = "student"
)

// Membership status constants.
const (
	MembershipPendingPayment = "pending_payment"
	MembershipActive         = "active"
	MembershipFailed         = "failed"
)

// Student document kinds. A student subscription requires exactly one of
// each.
const (
	DocumentStudentID = "student_id"
	DocumentTimetable = "timetable"
)

// MaxDocumentSize is the upper bound for each uploaded document.
const MaxDocumentSize = 5 << 20 // 5 MB

// planPrices maps each plan to its price in cents.
var planPrices = map[string]int64{
	PlanMonthly: 500,
	PlanYearly:  5000,
	PlanStudent: 2500,
}

// allowedDocumentTypes is the MIME allow-list for uploaded documents. The
// non-standard image/jpg is accepted because browsers and phone cameras
// still emit it.
var allowedDocumentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

// IsValidPlan checks whether the given plan name is one of the offered plans.
func IsValidPlan(plan string) bool {
	_, ok := planPrices[plan]
	return ok
}

// PlanPrice returns the price in cents for the given plan.
func PlanPrice(plan string) (int64, bool) {
	price, ok := planPrices[plan]
	return price, ok
}

// IsAllowedDocumentType checks an uploaded document's MIME type against the
// allow-list.
func IsAllowedDocumentType(contentType string) bool {
	return allowedDocumentTypes[contentType]
}

// Plan describes a membership plan as presented to clients.
type Plan struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
}

// Plans returns the offered membership plans in display order.
func Plans() []Plan {
	return []Plan{
		{Name: PlanMonthly, PriceCents: planPrices[PlanMonthly], Currency: "EUR"},
		{Name: PlanYearly, PriceCents: planPrices[PlanYearly], Currency: "EUR"},
		{Name: PlanStudent, PriceCents: planPrices[PlanStudent], Currency: "EUR"},
	}
}

// Membership is a subscription application, persisted before checkout.
type Membership struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id,omitempty"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	AddressLine1      string    `json:"address_line1"`
	AddressLine2      string    `json:"address_line2,omitempty"`
	City              string    `json:"city"`
	PostalCode        string    `json:"postal_code"`
	Country           string    `json:"country"`
	Plan              string    `json:"plan"`
	PriceCents        int64     `json:"price_cents"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	University        string    `json:"university,omitempty"`
	Program           string    `json:"program,omitempty"`
	CheckoutSessionID string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Document is an uploaded student-verification file attached to a
// membership.
type Document struct {
	ID           string    `json:"id"`
	MembershipID string    `json:"membership_id"`
	Kind         string    `json:"kind"`
	ObjectKey    string    `json:"-"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidateDocument checks one uploaded file against the size and type rules.
// The returned error names the offending file and constraint.
func ValidateDocument(kind, contentType string, size int64) error {
	if size > MaxDocumentSize {
		return fmt.Errorf("file %q exceeds the maximum size of %d MB", kind, MaxDocumentSize>>20)
	}
	if !IsAllowedDocumentType(contentType) {
		return fmt.Errorf("file %q has unsupported type %q", kind, contentType)
	}
	return nil
}
