package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/runnio/internal/client/models"
)

type eventEnvelope struct {
	Event models.Event `json:"event"`
}

type registrationEnvelope struct {
	Registration models.Registration `json:"registration"`
}

type resultEnvelope struct {
	Result models.Result `json:"result"`
}

func (c *HTTPClient) ListEvents(ctx context.Context, f models.ListFilter) (*models.EventPage, error) {
	var page models.EventPage
	if err := c.do(ctx, http.MethodGet, "/events", f.Query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) GetEvent(ctx context.Context, id models.ID) (*models.Event, error) {
	path, err := resourcePath("events", id.String())
	if err != nil {
		return nil, err
	}
	var resp eventEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

func (c *HTTPClient) RegisterForEvent(ctx context.Context, eventID models.ID) (*models.Registration, error) {
	path, err := resourcePath("events", eventID.String(), "register")
	if err != nil {
		return nil, err
	}
	var resp registrationEnvelope
	if err := c.do(ctx, http.MethodPost, path, nil, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp.Registration, nil
}

func (c *HTTPClient) MyRegistrations(ctx context.Context) ([]models.Registration, error) {
	var page models.RegistrationPage
	if err := c.do(ctx, http.MethodGet, "/registrations/my", nil, nil, &page); err != nil {
		return nil, err
	}
	return page.Registrations, nil
}

func (c *HTTPClient) CancelRegistration(ctx context.Context, id models.ID) error {
	path, err := resourcePath("registrations", id.String())
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *HTTPClient) SubmitResult(ctx context.Context, in models.ResultInput) (*models.Result, error) {
	var resp resultEnvelope
	if err := c.do(ctx, http.MethodPost, "/results", nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}
