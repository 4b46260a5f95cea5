package gateway

import (
	"context"
	"net/http"
)

// Profile is the account projection shown on the profile page.
type Profile struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Role     string `json:"role"`
}

// ProfileUpdateInput carries the fields an account holder may edit.
type ProfileUpdateInput struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// FetchProfile returns the authenticated user's profile.
func (c *Client) FetchProfile(ctx context.Context) (*Profile, error) {
	var payload Profile
	if err := c.call(ctx, http.MethodGet, "/api/profile", "account.profile", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateProfile rewrites the editable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, input ProfileUpdateInput) (*Profile, error) {
	var payload Profile
	if err := c.call(ctx, http.MethodPut, "/api/profile", "account.update", input, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
