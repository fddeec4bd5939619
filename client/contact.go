package client

import "context"

// ContactInput is a message sent through the public contact form.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// SubmitContact delivers a contact-form message. It returns the server-side
// identifier of the stored message.
func (c *Client) SubmitContact(ctx context.Context, input ContactInput) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.postJSON(ctx, "/api/v1/contact", input, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}
