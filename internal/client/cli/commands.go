package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/runnio/internal/client/client"
	"github.com/dmitrijs2005/runnio/internal/client/guard"
	"github.com/dmitrijs2005/runnio/internal/client/services"
)

const maxRedirects = 3

var errUsage = errors.New("usage")

// command is one REPL verb. Page commands are bound to a route and go
// through the guard; actions (help, logout, ...) run directly.
type command struct {
	name    string
	aliases []string
	args    string
	summary string

	route string
	req   guard.Requirement
	// location builds the path to navigate to from the typed arguments.
	// nil means the route itself.
	location func(args []string) (string, error)
	page     func(ctx context.Context, m guard.Match) error

	action func(ctx context.Context, args []string) error
	quit   bool
}

func (c *command) usage() string {
	if c.args == "" {
		return c.name
	}
	return c.name + " " + c.args
}

// withIDs builds a location from a pattern by filling {param} segments with
// the positional args, in order.
func withIDs(pattern string) func([]string) (string, error) {
	return func(args []string) (string, error) {
		segs := strings.Split(pattern, "/")
		n := 0
		for i, s := range segs {
			if strings.HasPrefix(s, "{") {
				if n >= len(args) {
					return "", errUsage
				}
				segs[i] = url.PathEscape(args[n])
				n++
			}
		}
		return strings.Join(segs, "/"), nil
	}
}

func (a *App) commands() []*command {
	return []*command{
		{name: "help", summary: "show available commands", action: a.help},
		{name: "login", summary: "sign in", route: guard.LoginPath, req: guard.RequireNone, page: a.loginPage},
		{name: "register", summary: "create an account", route: guard.RegisterPath, req: guard.RequireNone, page: a.registerPage},
		{name: "logout", summary: "sign out", action: a.logout},
		{name: "whoami", summary: "show who is signed in", action: a.whoami},

		{name: "events", aliases: []string{"ls"}, args: "[search]", summary: "browse events",
			route: "/events", req: guard.RequireNone, location: eventsLocation, page: a.eventsPage},
		{name: "event", args: "<id>", summary: "show one event",
			route: "/events/{id}", req: guard.RequireNone, location: withIDs("/events/{id}"), page: a.eventPage},
		{name: "dashboard", summary: "your upcoming events and registrations",
			route: guard.DefaultPath, req: guard.RequireAuthenticated, page: a.dashboardPage},
		{name: "signup", args: "<eventID>", summary: "register for an event",
			route: "/events/{id}/signup", req: guard.RequireAuthenticated, location: withIDs("/events/{id}/signup"), page: a.signupPage},
		{name: "registrations", summary: "list your registrations",
			route: "/registrations", req: guard.RequireAuthenticated, page: a.registrationsPage},
		{name: "cancel", args: "<registrationID>", summary: "cancel a registration",
			route: "/registrations/{id}/cancel", req: guard.RequireAuthenticated, location: withIDs("/registrations/{id}/cancel"), page: a.cancelPage},
		{name: "result", args: "<registrationID> <h:mm:ss>", summary: "submit a finish time",
			route: "/results/new", req: guard.RequireAuthenticated, location: resultLocation, page: a.resultPage},
		{name: "profile", summary: "show your profile",
			route: "/profile", req: guard.RequireAuthenticated, page: a.profilePage},
		{name: "profile-edit", summary: "edit your profile",
			route: "/profile/edit", req: guard.RequireAuthenticated, page: a.profileEditPage},

		{name: "admin-events", args: "[search]", summary: "manage events",
			route: "/admin/events", req: guard.RequireAdmin, location: adminEventsLocation, page: a.adminEventsPage},
		{name: "admin-event-add", summary: "create an event",
			route: "/admin/events/new", req: guard.RequireAdmin, page: a.adminEventAddPage},
		{name: "admin-event-edit", args: "<id>", summary: "edit an event",
			route: "/admin/events/{id}/edit", req: guard.RequireAdmin, location: withIDs("/admin/events/{id}/edit"), page: a.adminEventEditPage},
		{name: "admin-event-rm", args: "<id>", summary: "delete an event",
			route: "/admin/events/{id}/delete", req: guard.RequireAdmin, location: withIDs("/admin/events/{id}/delete"), page: a.adminEventDeletePage},
		{name: "admin-users", args: "[search]", summary: "list users",
			route: "/admin/users", req: guard.RequireAdmin, location: adminUsersLocation, page: a.adminUsersPage},
		{name: "admin-role", args: "<userID> <role>", summary: "change a user's role",
			route: "/admin/users/{id}/role/{role}", req: guard.RequireAdmin, location: withIDs("/admin/users/{id}/role/{role}"), page: a.adminRolePage},
		{name: "admin-registrations", summary: "list all registrations",
			route: "/admin/registrations", req: guard.RequireAdmin, page: a.adminRegistrationsPage},
		{name: "admin-reg-status", args: "<registrationID> <status>", summary: "set a registration's status",
			route: "/admin/registrations/{id}/status/{status}", req: guard.RequireAdmin, location: withIDs("/admin/registrations/{id}/status/{status}"), page: a.adminRegStatusPage},

		{name: "exit", aliases: []string{"quit"}, summary: "leave the program", quit: true},
	}
}

func (a *App) registerCommands() error {
	a.cmds = make(map[string]*command)
	for _, c := range a.commands() {
		if c.route != "" {
			if err := a.router.Handle(c.name, c.route, c.req); err != nil {
				return err
			}
		}
		a.order = append(a.order, c)
		for _, name := range append([]string{c.name}, c.aliases...) {
			a.cmds[name] = c
		}
	}
	return nil
}

// exec runs one input line and reports whether the REPL should stop.
func (a *App) exec(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	c, ok := a.cmds[parts[0]]
	if !ok {
		a.fail("Unknown command: %s (type 'help')", parts[0])
		return false
	}
	if c.quit {
		return true
	}
	args := parts[1:]

	var err error
	if c.action != nil {
		err = c.action(ctx, args)
	} else {
		loc := c.route
		if c.location != nil {
			loc, err = c.location(args)
		}
		if err == nil {
			err = a.navigate(ctx, loc)
		}
	}

	if errors.Is(err, errUsage) {
		a.info("Usage: %s", c.usage())
		return false
	}
	if err != nil {
		a.handleErr(ctx, err)
	}
	return false
}

// navigate renders location, following guard redirects.
func (a *App) navigate(ctx context.Context, location string) error {
	for i := 0; i < maxRedirects; i++ {
		m, d, err := a.router.Navigate(a.snapshot(), location)
		if err != nil {
			return err
		}
		a.log.Debug(ctx, "navigate", "location", location, "outcome", d.Outcome.String())

		switch d.Outcome {
		case guard.OutcomeWait:
			a.info("Loading session…")
			return nil
		case guard.OutcomeRender:
			return a.cmds[m.Route.Name].page(ctx, m)
		case guard.OutcomeRedirectLogin:
			a.warn("Please log in to continue.")
		case guard.OutcomeRedirectDefault:
			a.warn("Admin access required.")
		}
		location = d.Location
	}
	return fmt.Errorf("too many redirects at %s", location)
}

// handleErr reports a failed page. A 401/403 may mean the token was revoked
// or the role changed, so the identity is re-read from the server.
func (a *App) handleErr(ctx context.Context, err error) {
	a.failErr(err)

	if !errors.Is(err, client.ErrUnauthorized) || !a.auth.State().IsAuthenticated() {
		return
	}
	res, rerr := a.auth.Refresh(ctx)
	if rerr != nil {
		a.log.Error(ctx, "refresh after rejected request", "error", rerr)
		return
	}
	if res.Message == services.MsgSessionExpired {
		a.warn("%s", res.Message)
	}
}

func (a *App) help(_ context.Context, _ []string) error {
	snap := a.snapshot()
	for _, c := range a.order {
		if !visible(c, snap) {
			continue
		}
		a.info("  %-42s %s", c.usage(), c.summary)
	}
	return nil
}

// visible hides commands the current user cannot open.
func visible(c *command, s guard.Snapshot) bool {
	switch c.name {
	case "login", "register":
		return !s.Authenticated
	case "logout":
		return s.Authenticated
	}
	if c.route == "" {
		return true
	}
	switch c.req {
	case guard.RequireAdmin:
		return s.Authenticated && s.Role.IsAdmin()
	default:
		return true
	}
}

func eventsLocation(args []string) (string, error) {
	if len(args) == 0 {
		return "/events", nil
	}
	return "/events?" + url.Values{"search": {strings.Join(args, " ")}}.Encode(), nil
}

func adminEventsLocation(args []string) (string, error) {
	if len(args) == 0 {
		return "/admin/events", nil
	}
	return "/admin/events?" + url.Values{"search": {strings.Join(args, " ")}}.Encode(), nil
}

func adminUsersLocation(args []string) (string, error) {
	if len(args) == 0 {
		return "/admin/users", nil
	}
	return "/admin/users?" + url.Values{"search": {strings.Join(args, " ")}}.Encode(), nil
}

func resultLocation(args []string) (string, error) {
	if len(args) != 2 {
		return "", errUsage
	}
	return "/results/new?" + url.Values{"registration": {args[0]}, "time": {args[1]}}.Encode(), nil
}
