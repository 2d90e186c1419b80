package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/runnio/internal/client/client"
	"github.com/dmitrijs2005/runnio/internal/client/models"
	"github.com/dmitrijs2005/runnio/internal/logging"
	"golang.org/x/sync/errgroup"
)

const dashboardEventLimit = 5

// Dashboard is what a signed-in user sees first.
type Dashboard struct {
	Upcoming      []models.Event
	Registrations []models.Registration
}

// EventService defines what regular users do with events.
type EventService interface {
	List(ctx context.Context, f models.ListFilter) (*models.EventPage, error)
	Get(ctx context.Context, id models.ID) (*models.Event, error)
	SignUp(ctx context.Context, eventID models.ID) (*models.Registration, error)
	MyRegistrations(ctx context.Context) ([]models.Registration, error)
	Cancel(ctx context.Context, registrationID models.ID) error
	SubmitResult(ctx context.Context, registrationID models.ID, finishTime string) (*models.Result, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type eventService struct {
	api client.EventAPI
	log logging.Logger
}

func NewEventService(api client.EventAPI, log logging.Logger) EventService {
	if log == nil {
		log = logging.Discard()
	}
	return &eventService{api: api, log: log}
}

func (s *eventService) List(ctx context.Context, f models.ListFilter) (*models.EventPage, error) {
	f.Search = strings.TrimSpace(f.Search)
	page, err := s.api.ListEvents(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return page, nil
}

func (s *eventService) Get(ctx context.Context, id models.ID) (*models.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("get event: %w", ErrMissingID)
	}
	ev, err := s.api.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	return ev, nil
}

func (s *eventService) SignUp(ctx context.Context, eventID models.ID) (*models.Registration, error) {
	if eventID == "" {
		return nil, fmt.Errorf("sign up: %w", ErrMissingID)
	}
	reg, err := s.api.RegisterForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("sign up for event %s: %w", eventID, err)
	}
	s.log.Info(ctx, "registered for event", "event_id", eventID, "registration_id", reg.ID)
	return reg, nil
}

func (s *eventService) MyRegistrations(ctx context.Context) ([]models.Registration, error) {
	regs, err := s.api.MyRegistrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

func (s *eventService) Cancel(ctx context.Context, registrationID models.ID) error {
	if registrationID == "" {
		return fmt.Errorf("cancel registration: %w", ErrMissingID)
	}
	if err := s.api.CancelRegistration(ctx, registrationID); err != nil {
		return fmt.Errorf("cancel registration %s: %w", registrationID, err)
	}
	return nil
}

// SubmitResult normalises finishTime to hh:mm:ss before sending it.
func (s *eventService) SubmitResult(ctx context.Context, registrationID models.ID, finishTime string) (*models.Result, error) {
	if registrationID == "" {
		return nil, fmt.Errorf("submit result: %w", ErrMissingID)
	}
	d, err := models.ParseFinishTime(finishTime)
	if err != nil {
		return nil, fmt.Errorf("submit result: %w", err)
	}

	res, err := s.api.SubmitResult(ctx, models.ResultInput{
		RegistrationID: registrationID,
		FinishTime:     models.FormatFinishTime(d),
	})
	if err != nil {
		return nil, fmt.Errorf("submit result: %w", err)
	}
	return res, nil
}

// Dashboard loads upcoming events and the user's registrations in parallel.
// Either failure fails the whole page.
func (s *eventService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page, err := s.api.ListEvents(ctx, models.ListFilter{
			Status: string(models.EventStatusUpcoming),
			Limit:  dashboardEventLimit,
		})
		if err != nil {
			return fmt.Errorf("upcoming events: %w", err)
		}
		d.Upcoming = page.Events
		return nil
	})

	g.Go(func() error {
		regs, err := s.api.MyRegistrations(ctx)
		if err != nil {
			return fmt.Errorf("my registrations: %w", err)
		}
		d.Registrations = regs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	return &d, nil
}
