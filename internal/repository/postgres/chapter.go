package postgres

import (
	"context"
	"fmt"

	"github.com/fanclubhq/fanclub/internal/domain"
)

// ChapterRepository implements repository.ChapterRepository using PostgreSQL.
type ChapterRepository struct {
	db DB
}

// NewChapterRepository creates a PostgreSQL-backed chapter repository.
func NewChapterRepository(db DB) *ChapterRepository {
	return &ChapterRepository{db: db}
}

// List returns all chapters ordered by country and city.
func (r *ChapterRepository) List(ctx context.Context) ([]domain.Chapter, error) {
	query := `
		SELECT id, name, city, country, contact_email, member_count, created_at, updated_at
		FROM chapters
		ORDER BY country ASC, city ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []domain.Chapter
	for rows.Next() {
		var c domain.Chapter
		if err := rows.Scan(
			&c.ID, &c.Name, &c.City, &c.Country,
			&c.ContactEmail, &c.MemberCount, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapters: %w", err)
	}

	return chapters, nil
}
