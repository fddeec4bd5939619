package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/fanclubhq/fanclub/pkg/retry"
)

// Membership plan names offered by the API.
const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
	PlanStudent = "student"
)

// maxDocumentSize mirrors the server-side per-document upload limit.
const maxDocumentSize = 5 << 20 // 5 MB

// allowedDocumentTypes mirrors the server-side MIME allow-list for student
// documents.
var allowedDocumentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

// Plan describes a membership plan as returned by the API.
type Plan struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
}

// ListPlans fetches the offered membership plans.
func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := c.get(ctx, "/api/v1/memberships/plans", &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// File is an upload held fully in memory, so the request body can be
// rebuilt for every retry attempt.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// SubscribeForm carries everything the subscription endpoint needs. The
// student fields and documents are only required for the student plan.
type SubscribeForm struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	PostalCode   string
	Country      string
	Plan         string

	University string
	Program    string
	StudentID  *File
	Timetable  *File
}

// SubscribeResult is the successful outcome of a subscription request. The
// caller is expected to navigate to CheckoutURL to complete payment.
type SubscribeResult struct {
	MembershipID string `json:"membership_id"`
	CheckoutURL  string `json:"checkout_url"`
}

// ValidationError is a local pre-flight rejection: the form never reached
// the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// errMissingCheckoutURL marks a 2xx response without a checkout URL. There
// is nothing to retry: the server accepted the submission but payment
// cannot proceed.
var errMissingCheckoutURL = errors.New("subscription accepted but no checkout URL was returned")

// SubscribeMembership validates the form locally, then submits it with up
// to three attempts. Only transient failures (network errors, timeouts,
// 5xx responses) are retried, with a one second wait before the second
// attempt and two seconds before the third.
func (c *Client) SubscribeMembership(ctx context.Context, form SubscribeForm) (*SubscribeResult, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}

	var result SubscribeResult
	policy := retry.Policy{
		MaxAttempts: 3,
		Backoff:     retry.LinearBackoff(time.Second),
		Retryable:   isTransient,
		Sleep:       c.sleep,
	}

	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		body, contentType, err := form.encode()
		if err != nil {
			return err
		}

		result = SubscribeResult{}
		if err := c.postMultipart(ctx, "/api/v1/memberships/subscribe", contentType, body, &result); err != nil {
			return err
		}
		if result.CheckoutURL == "" {
			return errMissingCheckoutURL
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// validate runs every local check before a single byte goes on the wire.
func (f SubscribeForm) validate() error {
	required := []struct{ field, value string }{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"plan", f.Plan},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Message: r.field + " is required"}
		}
	}

	switch f.Plan {
	case PlanMonthly, PlanYearly:
		return nil
	case PlanStudent:
	default:
		return &ValidationError{Field: "plan", Message: fmt.Sprintf("unknown plan %q", f.Plan)}
	}

	if strings.TrimSpace(f.University) == "" {
		return &ValidationError{Field: "university", Message: "university is required for the student plan"}
	}
	if strings.TrimSpace(f.Program) == "" {
		return &ValidationError{Field: "program", Message: "program is required for the student plan"}
	}

	for _, doc := range []struct {
		field string
		file  *File
	}{
		{"student_id", f.StudentID},
		{"timetable", f.Timetable},
	} {
		if doc.file == nil {
			return &ValidationError{Field: doc.field, Message: doc.field + " document is required for the student plan"}
		}
		if err := doc.file.validate(doc.field); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) validate(field string) error {
	name := f.Name
	if name == "" {
		name = field
	}
	if len(f.Data) > maxDocumentSize {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s is too large: documents must be 5 MB or smaller", name),
		}
	}
	if !allowedDocumentTypes[f.ContentType] {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s has unsupported type %s: use a JPEG, PNG or PDF", name, f.ContentType),
		}
	}
	return nil
}

// encode builds a fresh multipart body. Called once per attempt because
// the reader is consumed by the request.
func (f SubscribeForm) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"first_name":    f.FirstName,
		"last_name":     f.LastName,
		"email":         f.Email,
		"phone":         f.Phone,
		"address_line1": f.AddressLine1,
		"address_line2": f.AddressLine2,
		"city":          f.City,
		"postal_code":   f.PostalCode,
		"country":       f.Country,
		"plan":          f.Plan,
		"university":    f.University,
		"program":       f.Program,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	for _, doc := range []struct {
		field string
		file  *File
	}{
		{"student_id", f.StudentID},
		{"timetable", f.Timetable},
	} {
		if doc.file == nil {
			continue
		}
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, doc.field, doc.file.Name))
		header.Set("Content-Type", doc.file.ContentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(doc.file.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// isTransient reports whether a failed attempt is worth retrying: network
// failures, timeouts, and 5xx responses. Client errors and malformed
// successes are terminal.
func isTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	if errors.Is(err, errMissingCheckoutURL) {
		return false
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// url.Error wraps every transport-level failure from http.Client.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	return false
}

// SubscribeErrorMessage maps a SubscribeMembership failure to the message
// shown to the user. More specific causes win over generic ones.
func SubscribeErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Message
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "The request timed out. Please try again."
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The request timed out. Please try again."
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusRequestEntityTooLarge:
			return "Your documents are too large to upload. Each file must be 5 MB or smaller."
		case apiErr.Status >= 500:
			return "The server is having trouble right now. Please try again in a few minutes."
		case apiErr.Message != "":
			return apiErr.Message
		}
		return "Something went wrong submitting your membership. Please try again."
	}

	if errors.Is(err, errMissingCheckoutURL) {
		return "Your membership was recorded but payment could not be started. Please contact us."
	}

	// Anything else at this point is a transport failure.
	return "Could not reach the server. Check your connection and try again."
}
