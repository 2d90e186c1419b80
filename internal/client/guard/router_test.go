package guard

import (
	"testing"

	"github.com/dmitrijs2005/runnio/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	r := NewRouter()
	require.NoError(t, r.Handle("events", "/events", RequireNone))
	require.NoError(t, r.Handle("event", "/events/{id}", RequireNone))
	require.NoError(t, r.Handle("signup", "/events/{id}/signup", RequireAuthenticated))
	require.NoError(t, r.Handle("dashboard", DefaultPath, RequireAuthenticated))
	require.NoError(t, r.Handle("admin-users", "/admin/users", RequireAdmin))
	require.NoError(t, r.Handle("login", LoginPath, RequireNone))
	return r
}

func TestRouter_Handle_Rejects(t *testing.T) {
	r := NewRouter()
	require.ErrorIs(t, r.Handle("a", "events", RequireNone), ErrInvalidRoute)
	require.ErrorIs(t, r.Handle("a", "/events/{id", RequireNone), ErrInvalidRoute)
	require.ErrorIs(t, r.Handle("a", "/events/{}", RequireNone), ErrInvalidRoute)
	require.NoError(t, r.Handle("a", "/a", RequireNone))
	require.ErrorIs(t, r.Handle("a", "/b", RequireNone), ErrDuplicateName)
	assert.Len(t, r.Routes(), 1)
}

func TestRouter_Match(t *testing.T) {
	r := newTestRouter(t)

	m, ok := r.Match("/events/42/signup")
	require.True(t, ok)
	assert.Equal(t, "signup", m.Route.Name)
	assert.Equal(t, map[string]string{"id": "42"}, m.Params)

	m, ok = r.Match("/events?search=city%2010k")
	require.True(t, ok)
	assert.Equal(t, "events", m.Route.Name)
	assert.Equal(t, "city 10k", m.Query.Get("search"))

	m, ok = r.Match("/events/a%2Fb")
	require.True(t, ok)
	assert.Equal(t, "a/b", m.Params["id"])

	_, ok = r.Match("/nowhere")
	assert.False(t, ok)
	_, ok = r.Match("https://example.com/events")
	assert.False(t, ok)
}

func TestRouter_NavigateRemembersOriginOnce(t *testing.T) {
	r := newTestRouter(t)

	_, d, err := r.Navigate(Snapshot{}, "/events/7/signup")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirectLogin, d.Outcome)

	assert.Equal(t, "/events/7/signup", r.TakeReturnPath())
	assert.Equal(t, DefaultPath, r.TakeReturnPath(), "origin is handed back only once")
}

func TestRouter_NavigateKeepsQuery(t *testing.T) {
	r := newTestRouter(t)
	require.NoError(t, r.Handle("result", "/results/new", RequireAuthenticated))

	_, _, err := r.Navigate(Snapshot{}, "/results/new?registration=r1&time=01:02:03")
	require.NoError(t, err)
	assert.Equal(t, "/results/new?registration=r1&time=01%3A02%3A03", r.TakeReturnPath())
}

func TestRouter_NavigateRendersAndRedirectsByRole(t *testing.T) {
	r := newTestRouter(t)
	user := Snapshot{Authenticated: true, Role: models.RoleUser}

	m, d, err := r.Navigate(user, "/events/7/signup")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRender, d.Outcome)
	assert.Equal(t, "7", m.Params["id"])

	_, d, err = r.Navigate(user, "/admin/users")
	require.NoError(t, err)
	assert.Equal(t, Decision{Outcome: OutcomeRedirectDefault, Location: DefaultPath}, d)
	assert.Equal(t, DefaultPath, r.TakeReturnPath(), "a role redirect does not remember the origin")
}

func TestRouter_NavigateWhileLoading(t *testing.T) {
	r := newTestRouter(t)

	_, d, err := r.Navigate(Snapshot{Loading: true}, "/admin/users")
	require.NoError(t, err)
	assert.Equal(t, OutcomeWait, d.Outcome)
}

func TestRouter_NavigateUnknown(t *testing.T) {
	r := newTestRouter(t)
	_, _, err := r.Navigate(Snapshot{}, "/nope")
	require.ErrorIs(t, err, ErrNoRoute)
}
