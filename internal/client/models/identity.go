package models

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidIdentity = errors.New("invalid identity")

// Identity is the authenticated principal as returned by the API.
type Identity struct {
	ID        ID         `json:"id" validate:"required"`
	Name      string     `json:"name" validate:"required"`
	Email     string     `json:"email" validate:"required,email"`
	Role      Role       `json:"role" validate:"required"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Validate reports whether the record is well formed. The error wraps
// ErrInvalidIdentity and names the offending fields.
func (i *Identity) Validate() error {
	if i == nil {
		return fmt.Errorf("%w: missing", ErrInvalidIdentity)
	}
	if err := validateStruct(i); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidIdentity, err.Error())
	}
	return nil
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role.IsAdmin()
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	if i.CreatedAt != nil {
		t := *i.CreatedAt
		c.CreatedAt = &t
	}
	if i.UpdatedAt != nil {
		t := *i.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

// ProfileUpdate carries the editable subset of an Identity.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
