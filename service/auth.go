package service

import (
	"context"
	"errors"
	"strings"

	"eventify-cli/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access token. Storing the token is the
// caller's job; the client only reads it back through its TokenSource.
func (c *Client) Login(ctx context.Context, email, password string) (model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.Session{}, errors.New("email and password are required")
	}
	var session model.Session
	if err := c.postJSON(ctx, c.endpoint("/auth/login"), loginRequest{Email: email, Password: password}, &session); err != nil {
		return model.Session{}, err
	}
	if session.AccessToken == "" {
		return model.Session{}, errors.New("login response missing access token")
	}
	return session, nil
}

// Register creates a new account. Field-level validation happens before the
// call; the server may still reject with its own validation errors.
func (c *Client) Register(ctx context.Context, registration model.Registration) error {
	return c.postJSON(ctx, c.endpoint("/auth/register"), registration, nil)
}

// GetUserProfile fetches the authenticated user's profile.
func (c *Client) GetUserProfile(ctx context.Context) (model.Profile, error) {
	var profile model.Profile
	if err := c.getJSON(ctx, c.endpoint("/auth/user-profile"), &profile); err != nil {
		return model.Profile{}, err
	}
	return profile, nil
}

// Logout invalidates the session server-side. Callers clear the local token
// regardless of the result.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, c.endpoint("/auth/logout"), nil, nil)
}
