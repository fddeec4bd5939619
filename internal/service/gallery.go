package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/fanclubhq/fanclub/internal/domain"
	"github.com/fanclubhq/fanclub/internal/repository"
	"github.com/fanclubhq/fanclub/internal/storage"
	apperrors "github.com/fanclubhq/fanclub/pkg/errors"
	"github.com/fanclubhq/fanclub/pkg/slug"
)

// galleryListTTL bounds staleness of the cached gallery listing.
const galleryListTTL = 5 * time.Minute

// galleryURLExpiry is how long presigned image URLs stay valid.
const galleryURLExpiry = time.Hour

// GalleryService implements the public gallery and admin uploads.
type GalleryService struct {
	galleryRepo repository.GalleryRepository
	store       storage.Storage
	cache       Cache
	logger      *slog.Logger
}

// NewGalleryService creates a gallery service.
func NewGalleryService(
	galleryRepo repository.GalleryRepository,
	store storage.Storage,
	cache Cache,
	logger *slog.Logger,
) *GalleryService {
	return &GalleryService{
		galleryRepo: galleryRepo,
		store:       store,
		cache:       cache,
		logger:      logger,
	}
}

// GalleryItem is a published image with its download URL.
type GalleryItem struct {
	domain.GalleryImage
	URL string `json:"url"`
}

// GalleryList is a page of published images.
type GalleryList struct {
	Images []GalleryItem `json:"images"`
	Total  int           `json:"total"`
}

// ListPublished returns published images with presigned URLs, read through
// the cache.
func (s *GalleryService) ListPublished(ctx context.Context, limit, offset int) (*GalleryList, error) {
	key := fmt.Sprintf("gallery:published:%d:%d", limit, offset)

	var cached GalleryList
	if cachedJSON(ctx, s.cache, s.logger, key, &cached) {
		return &cached, nil
	}

	images, total, err := s.galleryRepo.ListPublished(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}

	items := make([]GalleryItem, 0, len(images))
	for _, img := range images {
		url, err := s.store.PresignedGetURL(ctx, img.ObjectKey, galleryURLExpiry)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to presign gallery image",
				slog.String("image_id", img.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		items = append(items, GalleryItem{GalleryImage: img, URL: url})
	}

	list := &GalleryList{Images: items, Total: total}
	storeJSON(ctx, s.cache, s.logger, key, list, galleryListTTL)

	return list, nil
}

// UploadInput holds the parameters of an admin image upload.
type UploadInput struct {
	Title       string
	Caption     string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	UploadedBy  string
}

// Upload stores a new gallery image. Only image MIME types within the
// document size limit are accepted.
func (s *GalleryService) Upload(ctx context.Context, input UploadInput) (*domain.GalleryImage, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("title is required")
	}
	if input.Size > domain.MaxDocumentSize {
		return nil, apperrors.PayloadTooLarge(fmt.Sprintf("image %q exceeds the maximum size of %d MB", input.Filename, domain.MaxDocumentSize>>20))
	}
	if !domain.IsAllowedImageType(input.ContentType) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("image %q has unsupported type %q", input.Filename, input.ContentType))
	}

	img := &domain.GalleryImage{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Caption:     input.Caption,
		ContentType: input.ContentType,
		SizeBytes:   input.Size,
		Published:   true,
		UploadedBy:  input.UploadedBy,
		CreatedAt:   time.Now().UTC(),
	}
	img.ObjectKey = path.Join("gallery", slug.Generate(input.Title)+"-"+img.ID+path.Ext(input.Filename))

	if err := s.store.Put(ctx, img.ObjectKey, input.ContentType, input.Body, input.Size); err != nil {
		return nil, fmt.Errorf("store gallery image: %w", err)
	}

	if err := s.galleryRepo.Create(ctx, img); err != nil {
		if delErr := s.store.Delete(ctx, img.ObjectKey); delErr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned gallery object",
				slog.String("key", img.ObjectKey),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, fmt.Errorf("persist gallery image: %w", err)
	}

	s.logger.InfoContext(ctx, "gallery image uploaded",
		slog.String("image_id", img.ID),
		slog.String("title", img.Title),
	)

	return img, nil
}
