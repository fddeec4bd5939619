package postgres

import (
	"context"
	"fmt"

	"github.com/fanclubhq/fanclub/internal/domain"
)

// GalleryRepository implements repository.GalleryRepository using PostgreSQL.
type GalleryRepository struct {
	db DB
}

// NewGalleryRepository creates a PostgreSQL-backed gallery repository.
func NewGalleryRepository(db DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// ListPublished returns published images, newest first, with the total count.
func (r *GalleryRepository) ListPublished(ctx context.Context, limit, offset int) ([]domain.GalleryImage, int, error) {
	countQuery := `SELECT COUNT(*) FROM gallery_images WHERE published = TRUE`

	var total int
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count gallery images: %w", err)
	}

	query := `
		SELECT id, title, caption, object_key, content_type, size_bytes, published, COALESCE(uploaded_by::text, ''), created_at
		FROM gallery_images
		WHERE published = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list gallery images: %w", err)
	}
	defer rows.Close()

	var images []domain.GalleryImage
	for rows.Next() {
		var img domain.GalleryImage
		if err := rows.Scan(
			&img.ID, &img.Title, &img.Caption, &img.ObjectKey,
			&img.ContentType, &img.SizeBytes, &img.Published, &img.UploadedBy,
			&img.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan gallery image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate gallery images: %w", err)
	}

	return images, total, nil
}

// Create inserts a new gallery image record.
func (r *GalleryRepository) Create(ctx context.Context, img *domain.GalleryImage) error {
	query := `
		INSERT INTO gallery_images (id, title, caption, object_key, content_type, size_bytes, published, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)`

	_, err := r.db.Exec(ctx, query,
		img.ID, img.Title, img.Caption, img.ObjectKey,
		img.ContentType, img.SizeBytes, img.Published, img.UploadedBy,
		img.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert gallery image: %w", err)
	}

	return nil
}
