package domain

import (
	"time"
)

// allowedImageTypes restricts gallery uploads to images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// IsAllowedImageType checks a gallery upload's MIME type.
func IsAllowedImageType(contentType string) bool {
	return allowedImageTypes[contentType]
}

// GalleryImage is a published photo in the club gallery.
type GalleryImage struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Caption     string    `json:"caption,omitempty"`
	ObjectKey   string    `json:"-"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Published   bool      `json:"published"`
	UploadedBy  string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
