package client

import (
	"context"

	"github.com/dmitrijs2005/runnio/internal/client/models"
)

// AuthResponse is the body of a successful login or registration.
type AuthResponse struct {
	User  models.Identity `json:"user"`
	Token string          `json:"token"`
}

// AuthAPI covers the session lifecycle endpoints.
type AuthAPI interface {
	SetAuthHeader(token string)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*AuthResponse, error)
	Me(ctx context.Context) (*models.Identity, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Identity, error)
}

// EventAPI covers what regular users do: browse, register, submit results.
type EventAPI interface {
	ListEvents(ctx context.Context, f models.ListFilter) (*models.EventPage, error)
	GetEvent(ctx context.Context, id models.ID) (*models.Event, error)
	RegisterForEvent(ctx context.Context, eventID models.ID) (*models.Registration, error)
	MyRegistrations(ctx context.Context) ([]models.Registration, error)
	CancelRegistration(ctx context.Context, id models.ID) error
	SubmitResult(ctx context.Context, in models.ResultInput) (*models.Result, error)
}

// AdminAPI covers event, user and registration management.
type AdminAPI interface {
	CreateEvent(ctx context.Context, in models.EventInput) (*models.Event, error)
	UpdateEvent(ctx context.Context, id models.ID, in models.EventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, id models.ID) error
	ListUsers(ctx context.Context, f models.ListFilter) (*models.UserPage, error)
	SetUserRole(ctx context.Context, id models.ID, role models.Role) (*models.Identity, error)
	ListRegistrations(ctx context.Context, f models.ListFilter) (*models.RegistrationPage, error)
	SetRegistrationStatus(ctx context.Context, id models.ID, status models.RegistrationStatus) (*models.Registration, error)
}

// Client is the full API surface.
type Client interface {
	AuthAPI
	EventAPI
	AdminAPI
	Ping(ctx context.Context) error
	Close() error
}

var _ Client = (*HTTPClient)(nil)
