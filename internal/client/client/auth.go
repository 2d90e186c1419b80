package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/runnio/internal/client/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userEnvelope struct {
	User models.Identity `json:"user"`
}

// Login exchanges credentials for a session token. It does not touch the
// auth header; the caller decides whether the result is applied.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	req := registerRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the identity the current token belongs to.
func (c *HTTPClient) Me(ctx context.Context) (*models.Identity, error) {
	var resp userEnvelope
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Identity, error) {
	var resp userEnvelope
	if err := c.do(ctx, http.MethodPut, "/users/profile", nil, upd, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
