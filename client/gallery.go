package client

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// GalleryImage is a published gallery entry with a short-lived signed URL.
type GalleryImage struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption,omitempty"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// GalleryPage is one page of published gallery images.
type GalleryPage struct {
	Images     []GalleryImage `json:"data"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	HasNext    bool           `json:"has_next"`
}

// ListGallery fetches a page of published gallery images. Zero values fall
// back to the server defaults.
func (c *Client) ListGallery(ctx context.Context, page, perPage int) (*GalleryPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if perPage > 0 {
		q.Set("per_page", fmt.Sprint(perPage))
	}

	path := "/api/v1/gallery"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out GalleryPage
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
