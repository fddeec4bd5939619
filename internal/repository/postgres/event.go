package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fanclubhq/fanclub/internal/domain"
	apperrors "github.com/fanclubhq/fanclub/pkg/errors"
)

// EventRepository implements repository.EventRepository using PostgreSQL.
type EventRepository struct {
	db DB
}

// NewEventRepository creates a PostgreSQL-backed event repository.
func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

// ListUpcoming returns published events starting at or after now, soonest
// first, with the total count.
func (r *EventRepository) ListUpcoming(ctx context.Context, now time.Time, limit, offset int) ([]domain.Event, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM events
		WHERE published = TRUE AND starts_at >= $1`

	var total int
	if err := r.db.QueryRow(ctx, countQuery, now).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count upcoming events: %w", err)
	}

	query := `
		SELECT id, title, description, location, starts_at, ends_at, capacity, published, created_at, updated_at
		FROM events
		WHERE published = TRUE AND starts_at >= $1
		ORDER BY starts_at ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, now, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list upcoming events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Location,
			&e.StartsAt, &e.EndsAt, &e.Capacity, &e.Published,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate events: %w", err)
	}

	return events, total, nil
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, description, location, starts_at, ends_at, capacity, published, created_at, updated_at
		FROM events
		WHERE id = $1`

	var e domain.Event
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Location,
		&e.StartsAt, &e.EndsAt, &e.Capacity, &e.Published,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("event", id)
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}

	return &e, nil
}

// CreateRSVP records an RSVP. A duplicate RSVP for the same event and user
// maps to an already-exists error.
func (r *EventRepository) CreateRSVP(ctx context.Context, rsvp *domain.RSVP) error {
	query := `
		INSERT INTO event_rsvps (id, event_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, rsvp.ID, rsvp.EventID, rsvp.UserID, rsvp.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("rsvp", "event", rsvp.EventID)
		}
		return fmt.Errorf("insert rsvp: %w", err)
	}

	return nil
}
