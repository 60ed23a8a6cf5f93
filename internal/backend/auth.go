package backend

import "context"

// loginRequest is the body of POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register. Registration
// creates a locateur account with a trial subscription.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone,omitempty"`
}

// Me resolves the identity behind the current bearer credential.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Login exchanges credentials for a bearer token and identity. Login is one
// of the two unauthenticated endpoints; no Authorization header is attached
// because the auth provider returns an empty map without a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	var token Token
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &token); err != nil {
		return nil, err
	}

	return &token, nil
}

// Register creates a new locateur account and returns its first token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Token, error) {
	var token Token
	if err := c.post(ctx, "/auth/register", req, &token); err != nil {
		return nil, err
	}

	return &token, nil
}
