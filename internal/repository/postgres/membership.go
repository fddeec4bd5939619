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

// MembershipRepository implements repository.MembershipRepository using
// PostgreSQL.
type MembershipRepository struct {
	db DB
}

// NewMembershipRepository creates a PostgreSQL-backed membership repository.
func NewMembershipRepository(db DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create inserts a membership and its documents in one transaction.
func (r *MembershipRepository) Create(ctx context.Context, m *domain.Membership, docs []domain.Document) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin membership tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insertMembership := `
		INSERT INTO memberships (id, user_id, first_name, last_name, email, phone,
			address_line1, address_line2, city, postal_code, country,
			plan, price_cents, currency, status, university, program, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NULLIF($16, ''), NULLIF($17, ''), $18, $19)`

	_, err = tx.Exec(ctx, insertMembership,
		m.ID,
		m.UserID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.Phone,
		m.AddressLine1,
		m.AddressLine2,
		m.City,
		m.PostalCode,
		m.Country,
		m.Plan,
		m.PriceCents,
		m.Currency,
		m.Status,
		m.University,
		m.Program,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}

	insertDoc := `
		INSERT INTO membership_documents (id, membership_id, kind, object_key, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, d := range docs {
		if _, err := tx.Exec(ctx, insertDoc,
			d.ID, d.MembershipID, d.Kind, d.ObjectKey, d.ContentType, d.SizeBytes, d.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert membership document %s: %w", d.Kind, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit membership tx: %w", err)
	}

	return nil
}

// GetByID retrieves a membership by its ID.
func (r *MembershipRepository) GetByID(ctx context.Context, id string) (*domain.Membership, error) {
	query := `
		SELECT id, COALESCE(user_id::text, ''), first_name, last_name, email, phone,
			address_line1, address_line2, city, postal_code, country,
			plan, price_cents, currency, status,
			COALESCE(university, ''), COALESCE(program, ''), COALESCE(checkout_session_id, ''),
			created_at, updated_at
		FROM memberships
		WHERE id = $1`

	var m domain.Membership
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.UserID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.Phone,
		&m.AddressLine1,
		&m.AddressLine2,
		&m.City,
		&m.PostalCode,
		&m.Country,
		&m.Plan,
		&m.PriceCents,
		&m.Currency,
		&m.Status,
		&m.University,
		&m.Program,
		&m.CheckoutSessionID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("membership", id)
		}
		return nil, fmt.Errorf("scan membership: %w", err)
	}

	return &m, nil
}

// UpdateStatus sets the status and checkout session of a membership.
func (r *MembershipRepository) UpdateStatus(ctx context.Context, id, status, checkoutSessionID string) error {
	query := `
		UPDATE memberships
		SET status = $1, checkout_session_id = NULLIF($2, ''), updated_at = $3
		WHERE id = $4`

	ct, err := r.db.Exec(ctx, query, status, checkoutSessionID, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update membership status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("membership", id)
	}

	return nil
}
