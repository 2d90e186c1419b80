package models

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event is a running event users can register for.
type Event struct {
	ID                   ID          `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description,omitempty"`
	Location             string      `json:"location"`
	Date                 time.Time   `json:"date"`
	Distance             float64     `json:"distance"`
	MaxParticipants      int         `json:"maxParticipants"`
	CurrentParticipants  int         `json:"currentParticipants"`
	Price                float64     `json:"price"`
	Status               EventStatus `json:"status"`
	RegistrationDeadline *time.Time  `json:"registrationDeadline,omitempty"`
}

// SpotsLeft returns the remaining capacity, or -1 when the event is unlimited.
func (e Event) SpotsLeft() int {
	if e.MaxParticipants <= 0 {
		return -1
	}
	left := e.MaxParticipants - e.CurrentParticipants
	if left < 0 {
		return 0
	}
	return left
}

// EventInput is the body admins send to create or update an event.
type EventInput struct {
	Title                string      `json:"title" validate:"required"`
	Description          string      `json:"description,omitempty"`
	Location             string      `json:"location" validate:"required"`
	Date                 time.Time   `json:"date" validate:"required"`
	Distance             float64     `json:"distance" validate:"gt=0"`
	MaxParticipants      int         `json:"maxParticipants" validate:"gte=0"`
	Price                float64     `json:"price" validate:"gte=0"`
	Status               EventStatus `json:"status,omitempty" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
	RegistrationDeadline *time.Time  `json:"registrationDeadline,omitempty"`
}

// Validate checks the input before it is sent; the server validates again.
func (in EventInput) Validate() error {
	if err := validateStruct(in); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}
	if in.RegistrationDeadline != nil && in.RegistrationDeadline.After(in.Date) {
		return fmt.Errorf("invalid event: registrationDeadline is after the event date")
	}
	return nil
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type EventPage struct {
	Events     []Event    `json:"events"`
	Pagination Pagination `json:"pagination"`
}

// ListFilter mirrors the list endpoints' query-string parameters.
type ListFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// Query encodes the non-zero fields as URL query parameters.
func (f ListFilter) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}
