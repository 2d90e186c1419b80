package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/runnio/internal/client/models"
)

func (c *HTTPClient) CreateEvent(ctx context.Context, in models.EventInput) (*models.Event, error) {
	var resp eventEnvelope
	if err := c.do(ctx, http.MethodPost, "/events", nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

func (c *HTTPClient) UpdateEvent(ctx context.Context, id models.ID, in models.EventInput) (*models.Event, error) {
	path, err := resourcePath("events", id.String())
	if err != nil {
		return nil, err
	}
	var resp eventEnvelope
	if err := c.do(ctx, http.MethodPut, path, nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

func (c *HTTPClient) DeleteEvent(ctx context.Context, id models.ID) error {
	path, err := resourcePath("events", id.String())
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *HTTPClient) ListUsers(ctx context.Context, f models.ListFilter) (*models.UserPage, error) {
	var page models.UserPage
	if err := c.do(ctx, http.MethodGet, "/users", f.Query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) SetUserRole(ctx context.Context, id models.ID, role models.Role) (*models.Identity, error) {
	path, err := resourcePath("users", id.String(), "role")
	if err != nil {
		return nil, err
	}
	var resp userEnvelope
	body := struct {
		Role models.Role `json:"role"`
	}{Role: role}
	if err := c.do(ctx, http.MethodPut, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) ListRegistrations(ctx context.Context, f models.ListFilter) (*models.RegistrationPage, error) {
	var page models.RegistrationPage
	if err := c.do(ctx, http.MethodGet, "/registrations", f.Query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) SetRegistrationStatus(ctx context.Context, id models.ID, status models.RegistrationStatus) (*models.Registration, error) {
	path, err := resourcePath("registrations", id.String(), "status")
	if err != nil {
		return nil, err
	}
	var resp registrationEnvelope
	body := struct {
		Status models.RegistrationStatus `json:"status"`
	}{Status: status}
	if err := c.do(ctx, http.MethodPut, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Registration, nil
}
