package client

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Event is an upcoming club event as returned by the API.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
}

// RSVP is a confirmed attendance record.
type RSVP struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// EventPage is one page of upcoming events.
type EventPage struct {
	Events     []Event `json:"data"`
	TotalCount int     `json:"total_count"`
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
	TotalPages int     `json:"total_pages"`
	HasNext    bool    `json:"has_next"`
}

// ListEvents fetches a page of upcoming events. Zero values fall back to
// the server defaults.
func (c *Client) ListEvents(ctx context.Context, page, perPage int) (*EventPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if perPage > 0 {
		q.Set("per_page", fmt.Sprint(perPage))
	}

	path := "/api/v1/events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out EventPage
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RSVPToEvent confirms the signed-in user's attendance to an event.
func (c *Client) RSVPToEvent(ctx context.Context, eventID string) (*RSVP, error) {
	var out RSVP
	if err := c.postJSON(ctx, "/api/v1/events/"+url.PathEscape(eventID)+"/rsvp", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
