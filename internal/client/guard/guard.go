// Package guard decides whether a route may render for the current
// authentication state, and where to send the user when it may not.
//
// Decide is a pure function of a state Snapshot and a route Requirement:
//
//	loading                       -> wait
//	requirement none              -> render
//	signed out, auth or admin     -> redirect to login, remembering the origin
//	signed in, auth               -> render
//	signed in, admin              -> render for admins, else redirect to the default page
//
// Router binds path patterns to requirements and keeps the origin of the last
// redirect to login so a successful login can return there.
package guard

import (
	"net/url"
	"strings"

	"github.com/dmitrijs2005/runnio/internal/client/models"
)

const (
	LoginPath    = "/login"
	RegisterPath = "/register"
	DefaultPath  = "/dashboard"
)

// Requirement is what a route demands of the current session.
type Requirement int

const (
	RequireNone Requirement = iota
	RequireAuthenticated
	RequireAdmin
)

func (r Requirement) String() string {
	switch r {
	case RequireNone:
		return "none"
	case RequireAuthenticated:
		return "authenticated"
	case RequireAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

type Outcome int

const (
	OutcomeWait Outcome = iota
	OutcomeRender
	OutcomeRedirectLogin
	OutcomeRedirectDefault
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWait:
		return "wait"
	case OutcomeRender:
		return "render"
	case OutcomeRedirectLogin:
		return "redirect-login"
	case OutcomeRedirectDefault:
		return "redirect-default"
	default:
		return "unknown"
	}
}

// Snapshot is the part of the auth state the guard reads.
type Snapshot struct {
	Loading       bool
	Authenticated bool
	Role          models.Role
}

// SnapshotOf builds a Snapshot from an identity (nil when signed out).
func SnapshotOf(identity *models.Identity, loading bool) Snapshot {
	s := Snapshot{Loading: loading, Authenticated: identity != nil}
	if identity != nil {
		s.Role = identity.Role
	}
	return s
}

// Decision is the guard's verdict. Location is the redirect target; From is
// the requested location captured for a login redirect.
type Decision struct {
	Outcome  Outcome
	Location string
	From     string
}

// Decide applies the access table to one navigation attempt. Unknown
// requirements are treated as admin-only.
func Decide(s Snapshot, req Requirement, location string) Decision {
	if s.Loading {
		return Decision{Outcome: OutcomeWait}
	}
	if req == RequireNone {
		return Decision{Outcome: OutcomeRender}
	}
	if !s.Authenticated {
		return Decision{Outcome: OutcomeRedirectLogin, Location: LoginPath, From: location}
	}
	if req == RequireAuthenticated {
		return Decision{Outcome: OutcomeRender}
	}
	if s.Role.IsAdmin() {
		return Decision{Outcome: OutcomeRender}
	}
	return Decision{Outcome: OutcomeRedirectDefault, Location: DefaultPath}
}

// ResolveReturnPath sanitises a remembered origin. Anything that is not a
// local path, or that points back at the login or register pages, resolves
// to DefaultPath. The query string is kept.
func ResolveReturnPath(raw string) string {
	next := strings.TrimSpace(raw)
	if next == "" {
		return DefaultPath
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return DefaultPath
	}
	if !strings.HasPrefix(parsed.Path, "/") || strings.HasPrefix(parsed.Path, "//") {
		return DefaultPath
	}
	if p := strings.TrimRight(parsed.Path, "/"); p == LoginPath || p == RegisterPath {
		return DefaultPath
	}
	if parsed.RawQuery != "" {
		return parsed.Path + "?" + parsed.RawQuery
	}
	return parsed.Path
}
