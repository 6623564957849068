package backend

import (
	"context"
	"net/http"
)

// User is the current dashboard user as reported by the backend.
type User struct {
	UserName    string   `json:"userName"`
	DisplayName string   `json:"displayName,omitempty"`
	Role        string   `json:"role,omitempty"`
	Active      bool     `json:"active"`
	Emails      []string `json:"emails,omitempty"`
}

// Name returns the best display name for the user.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.UserName
}

// CurrentUser fetches the authenticated user from GET /user/me.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/user/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
