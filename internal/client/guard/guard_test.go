package guard

import (
	"fmt"
	"testing"

	"github.com/dmitrijs2005/runnio/internal/client/models"
	"github.com/stretchr/testify/assert"
)

var allRequirements = []Requirement{RequireNone, RequireAuthenticated, RequireAdmin}

var allSnapshots = []Snapshot{
	{Loading: true},
	{Loading: true, Authenticated: true, Role: models.RoleAdmin},
	{},
	{Authenticated: true, Role: models.RoleUser},
	{Authenticated: true, Role: models.RoleAdmin},
	{Authenticated: true, Role: models.Role("coach")},
}

func TestDecide_Table(t *testing.T) {
	user := Snapshot{Authenticated: true, Role: models.RoleUser}
	admin := Snapshot{Authenticated: true, Role: models.RoleAdmin}
	anon := Snapshot{}

	tests := []struct {
		name string
		s    Snapshot
		req  Requirement
		want Decision
	}{
		{name: "anon none", s: anon, req: RequireNone, want: Decision{Outcome: OutcomeRender}},
		{name: "anon auth", s: anon, req: RequireAuthenticated, want: Decision{Outcome: OutcomeRedirectLogin, Location: LoginPath, From: "/x"}},
		{name: "anon admin", s: anon, req: RequireAdmin, want: Decision{Outcome: OutcomeRedirectLogin, Location: LoginPath, From: "/x"}},
		{name: "user none", s: user, req: RequireNone, want: Decision{Outcome: OutcomeRender}},
		{name: "user auth", s: user, req: RequireAuthenticated, want: Decision{Outcome: OutcomeRender}},
		{name: "user admin", s: user, req: RequireAdmin, want: Decision{Outcome: OutcomeRedirectDefault, Location: DefaultPath}},
		{name: "admin admin", s: admin, req: RequireAdmin, want: Decision{Outcome: OutcomeRender}},
		{name: "admin auth", s: admin, req: RequireAuthenticated, want: Decision{Outcome: OutcomeRender}},
		{name: "unknown requirement", s: user, req: Requirement(99), want: Decision{Outcome: OutcomeRedirectDefault, Location: DefaultPath}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.s, tt.req, "/x"))
		})
	}
}

func TestDecide_LoadingAlwaysWaits(t *testing.T) {
	for _, s := range allSnapshots {
		if !s.Loading {
			continue
		}
		for _, req := range allRequirements {
			assert.Equal(t, OutcomeWait, Decide(s, req, "/admin/users").Outcome, "%+v %s", s, req)
		}
	}
}

func TestDecide_SignedOutAdminRouteGoesToLoginNotDefault(t *testing.T) {
	d := Decide(Snapshot{}, RequireAdmin, "/admin/users")
	assert.Equal(t, OutcomeRedirectLogin, d.Outcome)
	assert.Equal(t, "/admin/users", d.From)
}

func TestDecide_UnknownRoleIsNeverAdmin(t *testing.T) {
	d := Decide(Snapshot{Authenticated: true, Role: "superuser"}, RequireAdmin, "/admin/events")
	assert.Equal(t, OutcomeRedirectDefault, d.Outcome)
}

func TestDecide_NoneAlwaysRendersOnceLoaded(t *testing.T) {
	for _, s := range allSnapshots {
		if s.Loading {
			continue
		}
		assert.Equal(t, OutcomeRender, Decide(s, RequireNone, "/events").Outcome, fmt.Sprintf("%+v", s))
	}
}

func TestSnapshotOf(t *testing.T) {
	assert.Equal(t, Snapshot{Loading: true}, SnapshotOf(nil, true))
	id := &models.Identity{ID: "1", Role: models.RoleAdmin}
	assert.Equal(t, Snapshot{Authenticated: true, Role: models.RoleAdmin}, SnapshotOf(id, false))
}

func TestResolveReturnPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: DefaultPath},
		{in: "   ", want: DefaultPath},
		{in: "/events/42/signup", want: "/events/42/signup"},
		{in: " /profile ", want: "/profile"},
		{in: "/events?search=10k", want: "/events?search=10k"},
		{in: "https://evil.example/steal", want: DefaultPath},
		{in: "//evil.example/steal", want: DefaultPath},
		{in: "events", want: DefaultPath},
		{in: "/login", want: DefaultPath},
		{in: "/register/", want: DefaultPath},
		{in: "%zz", want: DefaultPath},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveReturnPath(tt.in))
		})
	}
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "admin", RequireAdmin.String())
	assert.Equal(t, "redirect-login", OutcomeRedirectLogin.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
