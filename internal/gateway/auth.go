package gateway

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the platform-minted bearer token.
type LoginResult struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a platform bearer token. The storefront
// never stores the password.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var payload LoginResult
	body := loginRequest{Email: email, Password: password}
	if err := c.call(ctx, http.MethodPost, "/api/auth/login", "auth.login", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
