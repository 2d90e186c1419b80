package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/runnio/internal/client/client"
	"github.com/dmitrijs2005/runnio/internal/client/models"
	"github.com/dmitrijs2005/runnio/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCommands_RoutesAndAliases(t *testing.T) {
	h := newHarness(t, nil, "")

	routes := h.app.router.Routes()
	require.NotEmpty(t, routes)
	for _, rt := range routes {
		c, ok := h.app.cmds[rt.Name]
		require.True(t, ok, rt.Name)
		assert.NotNil(t, c.page, rt.Name)
	}
	assert.Same(t, h.app.cmds["events"], h.app.cmds["ls"])
	assert.Same(t, h.app.cmds["exit"], h.app.cmds["quit"])
}

func TestWithIDs(t *testing.T) {
	loc, err := withIDs("/admin/users/{id}/role/{role}")([]string{"7", "admin"})
	require.NoError(t, err)
	assert.Equal(t, "/admin/users/7/role/admin", loc)

	loc, err = withIDs("/events/{id}")([]string{"a b/c"})
	require.NoError(t, err)
	assert.Equal(t, "/events/a%20b%2Fc", loc)

	_, err = withIDs("/events/{id}/signup")(nil)
	assert.ErrorIs(t, err, errUsage)
}

func TestLocations(t *testing.T) {
	loc, _ := eventsLocation(nil)
	assert.Equal(t, "/events", loc)
	loc, _ = eventsLocation([]string{"city", "10k"})
	assert.Equal(t, "/events?search=city+10k", loc)

	loc, err := resultLocation([]string{"5", "1:45:00"})
	require.NoError(t, err)
	assert.Equal(t, "/results/new?registration=5&time=1%3A45%3A00", loc)

	_, err = resultLocation([]string{"5"})
	assert.ErrorIs(t, err, errUsage)
}

func TestExec_UnknownAndUsage(t *testing.T) {
	h := newHarness(t, john(), "")
	ctx := context.Background()

	assert.False(t, h.app.exec(ctx, "frobnicate"))
	assert.Contains(t, h.out.String(), "Unknown command: frobnicate")

	h.out.Reset()
	assert.False(t, h.app.exec(ctx, "event"))
	assert.Contains(t, h.out.String(), "Usage: event <id>")
	assert.Empty(t, h.events.calls)

	assert.False(t, h.app.exec(ctx, "   "))
	assert.True(t, h.app.exec(ctx, "quit"))
}

func TestNavigate_WaitsWhileLoading(t *testing.T) {
	h := newHarness(t, nil, "")
	h.auth.state.Loading = true

	h.app.exec(context.Background(), "dashboard")

	assert.Contains(t, h.out.String(), "Loading session…")
	assert.Empty(t, h.events.calls)
}

func TestNavigate_PublicPageWhileSignedOut(t *testing.T) {
	h := newHarness(t, nil, "")
	h.events.page = models.EventPage{Events: []models.Event{{ID: "7", Title: "City 10K", Status: models.EventStatusUpcoming}}}

	h.app.exec(context.Background(), "events city")

	assert.Equal(t, []string{"list"}, h.events.calls)
	assert.Equal(t, "city", h.events.listFilter.Search)
	assert.Contains(t, h.out.String(), "City 10K")
}

func TestNavigate_LoginRedirectReplaysOrigin(t *testing.T) {
	stubPassword(t, "secret")
	h := newHarness(t, nil, "john@example.com\n")
	h.auth.loginRes = services.Result{Success: true, Identity: john()}

	h.app.exec(context.Background(), "signup 7")

	out := h.out.String()
	assert.Contains(t, out, "Please log in to continue.")
	assert.Contains(t, out, "Signed in as John")
	assert.Equal(t, []string{"john@example.com"}, h.auth.logins)
	assert.Equal(t, []string{"signup:7"}, h.events.calls)
	assert.Contains(t, out, "A-12")
	assert.Equal(t, "(John)", h.app.status())
}

func TestNavigate_FailedLoginKeepsOriginForNextAttempt(t *testing.T) {
	stubPassword(t, "secret")
	h := newHarness(t, nil, "john@example.com\njohn@example.com\n")
	h.auth.loginRes = services.Result{Message: "Invalid credentials", Errors: []string{"password is wrong"}}
	ctx := context.Background()

	h.app.exec(ctx, "registrations")
	assert.Contains(t, h.out.String(), "Invalid credentials")
	assert.Contains(t, h.out.String(), "password is wrong")
	assert.Empty(t, h.events.calls)

	h.auth.loginRes = services.Result{Success: true, Identity: john()}
	h.app.exec(ctx, "login")
	assert.Equal(t, []string{"registrations"}, h.events.calls)
}

func TestNavigate_LoginWithoutOriginGoesToDashboard(t *testing.T) {
	stubPassword(t, "secret")
	h := newHarness(t, nil, "john@example.com\n")
	h.auth.loginRes = services.Result{Success: true, Identity: john()}

	h.app.exec(context.Background(), "login")

	assert.Equal(t, []string{"dashboard"}, h.events.calls)
}

func TestNavigate_AdminRouteForUserRedirectsToDashboard(t *testing.T) {
	h := newHarness(t, john(), "")

	h.app.exec(context.Background(), "admin-users")

	assert.Contains(t, h.out.String(), "Admin access required.")
	assert.Empty(t, h.admin.calls)
	assert.Equal(t, []string{"dashboard"}, h.events.calls)
}

func TestNavigate_AdminRouteWhileSignedOutGoesToLogin(t *testing.T) {
	stubPassword(t, "secret")
	h := newHarness(t, nil, "ann@example.com\n")
	h.auth.loginRes = services.Result{Success: true, Identity: admin()}

	h.app.exec(context.Background(), "admin-users")

	assert.Contains(t, h.out.String(), "Please log in to continue.")
	assert.Equal(t, []string{"users"}, h.admin.calls)
}

func TestNavigate_UnknownRoleIsNotAdmin(t *testing.T) {
	id := john()
	id.Role = "superuser"
	h := newHarness(t, id, "")

	h.app.exec(context.Background(), "admin-registrations")

	assert.Empty(t, h.admin.calls)
	assert.Contains(t, h.out.String(), "Admin access required.")
}

func TestHandleErr_UnauthorizedRefreshesSession(t *testing.T) {
	h := newHarness(t, john(), "")
	h.events.err = &client.APIError{StatusCode: 401, Message: "Token is not valid"}
	h.auth.refreshRes = services.Result{Message: services.MsgSessionExpired}

	h.app.exec(context.Background(), "registrations")

	assert.Equal(t, 1, h.auth.refreshes)
	out := h.out.String()
	assert.Contains(t, out, "Token is not valid")
	assert.Contains(t, out, services.MsgSessionExpired)
	assert.False(t, h.auth.State().IsAuthenticated())
	assert.Equal(t, "", h.app.status())
}

func TestHandleErr_OtherErrorsDoNotRefresh(t *testing.T) {
	h := newHarness(t, john(), "")
	h.events.err = client.ErrUnavailable

	h.app.exec(context.Background(), "registrations")

	assert.Zero(t, h.auth.refreshes)
	assert.Contains(t, h.out.String(), services.MsgUnavailable)
}

func TestHelp_HidesWhatTheUserCannotOpen(t *testing.T) {
	h := newHarness(t, nil, "")
	h.app.exec(context.Background(), "help")
	out := h.out.String()
	assert.Contains(t, out, "login")
	assert.NotContains(t, out, "logout")
	assert.NotContains(t, out, "admin-users")

	h = newHarness(t, john(), "")
	h.app.exec(context.Background(), "help")
	out = h.out.String()
	assert.Contains(t, out, "logout")
	assert.Contains(t, out, "signup <eventID>")
	assert.NotContains(t, out, "admin-users")

	h = newHarness(t, admin(), "")
	h.app.exec(context.Background(), "help")
	assert.Contains(t, h.out.String(), "admin-users")
}
