package repository

import (
	"context"
	"time"

	"github.com/fanclubhq/fanclub/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user in the store.
	Update(ctx context.Context, user *domain.User) error
}

// MembershipRepository defines the interface for membership persistence.
type MembershipRepository interface {
	// Create inserts a membership and its documents atomically.
	Create(ctx context.Context, m *domain.Membership, docs []domain.Document) error

	// GetByID retrieves a membership by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Membership, error)

	// UpdateStatus sets the status and checkout session of a membership.
	UpdateStatus(ctx context.Context, id, status, checkoutSessionID string) error
}

// EventRepository defines the interface for event persistence.
type EventRepository interface {
	// ListUpcoming returns published events starting at or after now,
	// ordered by start time, with the total count for pagination.
	ListUpcoming(ctx context.Context, now time.Time, limit, offset int) ([]domain.Event, int, error)

	// GetByID retrieves an event by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Event, error)

	// CreateRSVP records a member's RSVP for an event.
	CreateRSVP(ctx context.Context, rsvp *domain.RSVP) error
}

// GalleryRepository defines the interface for gallery persistence.
type GalleryRepository interface {
	// ListPublished returns published images, newest first, with the total
	// count for pagination.
	ListPublished(ctx context.Context, limit, offset int) ([]domain.GalleryImage, int, error)

	// Create inserts a new gallery image record.
	Create(ctx context.Context, img *domain.GalleryImage) error
}

// ContactRepository defines the interface for contact message persistence.
type ContactRepository interface {
	// Create stores a submitted contact message.
	Create(ctx context.Context, msg *domain.ContactMessage) error
}

// ChapterRepository defines the interface for the chapter directory.
type ChapterRepository interface {
	// List returns all chapters ordered by country and city.
	List(ctx context.Context) ([]domain.Chapter, error)
}
