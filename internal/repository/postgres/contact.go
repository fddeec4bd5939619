package postgres

import (
	"context"
	"fmt"

	"github.com/fanclubhq/fanclub/internal/domain"
)

// ContactRepository implements repository.ContactRepository using PostgreSQL.
type ContactRepository struct {
	db DB
}

// NewContactRepository creates a PostgreSQL-backed contact repository.
func NewContactRepository(db DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create stores a submitted contact message.
func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}

	return nil
}
