package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/runnio/internal/client/client"
	"github.com/dmitrijs2005/runnio/internal/client/models"
	"github.com/dmitrijs2005/runnio/internal/logging"
)

var (
	ErrMissingID     = errors.New("id is required")
	ErrUnknownRole   = errors.New("unknown role")
	ErrUnknownStatus = errors.New("unknown registration status")
)

// AdminService defines event, user and registration management. Callers are
// expected to have passed the admin route guard; the server enforces the
// role again.
type AdminService interface {
	CreateEvent(ctx context.Context, in models.EventInput) (*models.Event, error)
	UpdateEvent(ctx context.Context, id models.ID, in models.EventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, id models.ID) error
	ListUsers(ctx context.Context, f models.ListFilter) (*models.UserPage, error)
	SetUserRole(ctx context.Context, id models.ID, role string) (*models.Identity, error)
	ListRegistrations(ctx context.Context, f models.ListFilter) (*models.RegistrationPage, error)
	SetRegistrationStatus(ctx context.Context, id models.ID, status string) (*models.Registration, error)
}

type adminService struct {
	api client.AdminAPI
	log logging.Logger
}

func NewAdminService(api client.AdminAPI, log logging.Logger) AdminService {
	if log == nil {
		log = logging.Discard()
	}
	return &adminService{api: api, log: log}
}

func (s *adminService) CreateEvent(ctx context.Context, in models.EventInput) (*models.Event, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ev, err := s.api.CreateEvent(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.log.Info(ctx, "event created", "event_id", ev.ID)
	return ev, nil
}

func (s *adminService) UpdateEvent(ctx context.Context, id models.ID, in models.EventInput) (*models.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("update event: %w", ErrMissingID)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ev, err := s.api.UpdateEvent(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update event %s: %w", id, err)
	}
	return ev, nil
}

func (s *adminService) DeleteEvent(ctx context.Context, id models.ID) error {
	if id == "" {
		return fmt.Errorf("delete event: %w", ErrMissingID)
	}
	if err := s.api.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	s.log.Info(ctx, "event deleted", "event_id", id)
	return nil
}

func (s *adminService) ListUsers(ctx context.Context, f models.ListFilter) (*models.UserPage, error) {
	page, err := s.api.ListUsers(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return page, nil
}

// SetUserRole only assigns roles this client knows; unknown roles may be
// displayed but not granted from here.
func (s *adminService) SetUserRole(ctx context.Context, id models.ID, role string) (*models.Identity, error) {
	if id == "" {
		return nil, fmt.Errorf("set role: %w", ErrMissingID)
	}
	r, ok := models.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("set role: %w %q", ErrUnknownRole, role)
	}
	u, err := s.api.SetUserRole(ctx, id, r)
	if err != nil {
		return nil, fmt.Errorf("set role of user %s: %w", id, err)
	}
	s.log.Info(ctx, "user role changed", "user_id", id, "role", r)
	return u, nil
}

func (s *adminService) ListRegistrations(ctx context.Context, f models.ListFilter) (*models.RegistrationPage, error) {
	page, err := s.api.ListRegistrations(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return page, nil
}

func (s *adminService) SetRegistrationStatus(ctx context.Context, id models.ID, status string) (*models.Registration, error) {
	if id == "" {
		return nil, fmt.Errorf("set registration status: %w", ErrMissingID)
	}
	st, ok := models.ParseRegistrationStatus(status)
	if !ok {
		return nil, fmt.Errorf("set registration status: %w %q", ErrUnknownStatus, status)
	}
	reg, err := s.api.SetRegistrationStatus(ctx, id, st)
	if err != nil {
		return nil, fmt.Errorf("set status of registration %s: %w", id, err)
	}
	return reg, nil
}
