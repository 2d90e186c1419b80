package models

import "strings"

// Role is the single role an Identity holds. The set is open: values the
// client does not know are carried through untouched and grant nothing.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normalises s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.IsValid()
}

// IsValid reports whether r is one of the roles this client understands.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether r grants access to administrative routes.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string { return string(r) }
