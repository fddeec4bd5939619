package client

import "context"

// User is the account record as returned by the API.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

// RegisterInput holds the fields for creating a local account.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type authPayload struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Register creates a local account and returns the user with its access
// token.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*User, string, error) {
	var payload authPayload
	if err := c.postJSON(ctx, "/api/v1/auth/register", input, &payload); err != nil {
		return nil, "", err
	}
	return &payload.User, payload.Token, nil
}

// LoginWithPassword exchanges credentials for the user and an access token.
func (c *Client) LoginWithPassword(ctx context.Context, email, password string) (*User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var payload authPayload
	if err := c.postJSON(ctx, "/api/v1/auth/login", body, &payload); err != nil {
		return nil, "", err
	}
	return &payload.User, payload.Token, nil
}

// Profile returns the account the stored token belongs to.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/api/v1/auth/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
