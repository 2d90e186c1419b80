package cli

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/runnio/internal/client/guard"
	"github.com/dmitrijs2005/runnio/internal/client/models"
)

// filterFrom reads list parameters from a location's query string.
func filterFrom(q url.Values) models.ListFilter {
	f := models.ListFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		f.Page = p
	}
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 {
		f.Limit = l
	}
	return f
}

func (a *App) eventsPage(ctx context.Context, m guard.Match) error {
	page, err := a.events.List(ctx, filterFrom(m.Query))
	if err != nil {
		return err
	}
	a.title("Events")
	if err := a.eventsTable(page.Events); err != nil {
		return err
	}
	a.pagination(page.Pagination)
	return nil
}

func (a *App) eventPage(ctx context.Context, m guard.Match) error {
	ev, err := a.events.Get(ctx, models.ID(m.Params["id"]))
	if err != nil {
		return err
	}

	a.title(ev.Title)
	rows := [][]string{
		{"id", ev.ID.String()},
		{"location", ev.Location},
		{"date", ev.Date.Local().Format(dateLayout)},
		{"distance", formatDistance(ev.Distance)},
		{"spots left", spots(*ev)},
		{"price", strconv.FormatFloat(ev.Price, 'f', 2, 64)},
		{"status", statusText(string(ev.Status))},
	}
	if ev.RegistrationDeadline != nil {
		rows = append(rows, []string{"registration until", formatTimePtr(ev.RegistrationDeadline)})
	}
	if err := renderTable(a.out, []string{"field", "value"}, rows); err != nil {
		return err
	}
	if ev.Description != "" {
		a.info("\n%s", ev.Description)
	}
	if ev.Status == models.EventStatusUpcoming && ev.SpotsLeft() != 0 {
		a.info("\nSign up with: signup %s", ev.ID)
	}
	return nil
}

func (a *App) dashboardPage(ctx context.Context, _ guard.Match) error {
	d, err := a.events.Dashboard(ctx)
	if err != nil {
		return err
	}
	if st := a.auth.State(); st.Identity != nil {
		a.title("Hello, " + st.Identity.Name)
	}
	a.title("Upcoming events")
	if err := a.eventsTable(d.Upcoming); err != nil {
		return err
	}
	a.title("Your registrations")
	return a.registrationsTable(d.Registrations, false)
}

func (a *App) signupPage(ctx context.Context, m guard.Match) error {
	reg, err := a.events.SignUp(ctx, models.ID(m.Params["id"]))
	if err != nil {
		return err
	}
	a.success("Registered (registration %s, status %s).", reg.ID, reg.Status)
	if reg.BibNumber != "" {
		a.info("Your bib number is %s.", reg.BibNumber)
	}
	return nil
}

func (a *App) registrationsPage(ctx context.Context, _ guard.Match) error {
	regs, err := a.events.MyRegistrations(ctx)
	if err != nil {
		return err
	}
	a.title("Your registrations")
	return a.registrationsTable(regs, false)
}

func (a *App) cancelPage(ctx context.Context, m guard.Match) error {
	id := models.ID(m.Params["id"])
	if err := a.events.Cancel(ctx, id); err != nil {
		return err
	}
	a.success("Registration %s cancelled.", id)
	return nil
}

func (a *App) resultPage(ctx context.Context, m guard.Match) error {
	res, err := a.events.SubmitResult(ctx, models.ID(m.Query.Get("registration")), m.Query.Get("time"))
	if err != nil {
		return err
	}
	a.success("Result %s recorded.", res.FinishTime)
	if res.Position > 0 {
		a.info("Position: %d", res.Position)
	}
	return nil
}
