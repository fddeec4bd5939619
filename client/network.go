package client

import "context"

// Chapter is a local fan-club chapter in the global network.
type Chapter struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Country      string `json:"country"`
	ContactEmail string `json:"contact_email"`
	MemberCount  int    `json:"member_count"`
}

// ListChapters fetches the global-network chapter directory.
func (c *Client) ListChapters(ctx context.Context) ([]Chapter, error) {
	var chapters []Chapter
	if err := c.get(ctx, "/api/v1/global-network/groups", &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}
