package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// ParseRegistrationStatus reports whether s is a status admins may set.
func ParseRegistrationStatus(s string) (RegistrationStatus, bool) {
	st := RegistrationStatus(s)
	switch st {
	case RegistrationPending, RegistrationConfirmed, RegistrationCancelled:
		return st, true
	default:
		return st, false
	}
}

// Registration links a user to an event.
type Registration struct {
	ID         ID                 `json:"id"`
	EventID    ID                 `json:"eventId"`
	EventTitle string             `json:"eventTitle,omitempty"`
	EventDate  *time.Time         `json:"eventDate,omitempty"`
	UserID     ID                 `json:"userId"`
	UserName   string             `json:"userName,omitempty"`
	Status     RegistrationStatus `json:"status"`
	BibNumber  string             `json:"bibNumber,omitempty"`
	CreatedAt  *time.Time         `json:"createdAt,omitempty"`
}

type RegistrationPage struct {
	Registrations []Registration `json:"registrations"`
	Pagination    Pagination     `json:"pagination"`
}

// Result is a finish time submitted against a registration.
type Result struct {
	ID             ID         `json:"id"`
	RegistrationID ID         `json:"registrationId"`
	EventID        ID         `json:"eventId,omitempty"`
	FinishTime     string     `json:"finishTime"`
	Position       int        `json:"position,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
}

type ResultInput struct {
	RegistrationID ID     `json:"registrationId"`
	FinishTime     string `json:"finishTime"`
}

type UserPage struct {
	Users      []Identity `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// ParseFinishTime accepts "h:mm:ss" or "mm:ss" and returns the elapsed time.
func ParseFinishTime(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("finish time %q: want h:mm:ss", s)
	}
	if len(parts) == 2 {
		parts = append([]string{"0"}, parts...)
	}

	var vals [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("finish time %q: want h:mm:ss", s)
		}
		if i > 0 && (len(p) != 2 || n > 59) {
			return 0, fmt.Errorf("finish time %q: minutes and seconds must be 00-59", s)
		}
		vals[i] = n
	}

	d := time.Duration(vals[0])*time.Hour + time.Duration(vals[1])*time.Minute + time.Duration(vals[2])*time.Second
	if d == 0 {
		return 0, fmt.Errorf("finish time %q: must be positive", s)
	}
	return d, nil
}

// FormatFinishTime renders d as "hh:mm:ss", the form the API stores.
func FormatFinishTime(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, d/time.Second)
}
