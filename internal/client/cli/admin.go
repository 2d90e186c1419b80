package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/runnio/internal/client/guard"
	"github.com/dmitrijs2005/runnio/internal/client/models"
)

func (a *App) adminEventsPage(ctx context.Context, m guard.Match) error {
	page, err := a.events.List(ctx, filterFrom(m.Query))
	if err != nil {
		return err
	}
	a.title("Manage events")
	if err := a.eventsTable(page.Events); err != nil {
		return err
	}
	a.pagination(page.Pagination)
	return nil
}

func (a *App) adminEventAddPage(ctx context.Context, _ guard.Match) error {
	a.title("New event")
	in, err := a.readEventInput(models.EventInput{Status: models.EventStatusUpcoming})
	if err != nil {
		return err
	}
	ev, err := a.admin.CreateEvent(ctx, in)
	if err != nil {
		return err
	}
	a.success("Event %q created (id %s).", ev.Title, ev.ID)
	return nil
}

func (a *App) adminEventEditPage(ctx context.Context, m guard.Match) error {
	id := models.ID(m.Params["id"])
	ev, err := a.events.Get(ctx, id)
	if err != nil {
		return err
	}

	a.title("Edit event (press Enter to keep a value)")
	in, err := a.readEventInput(models.EventInput{
		Title:                ev.Title,
		Description:          ev.Description,
		Location:             ev.Location,
		Date:                 ev.Date,
		Distance:             ev.Distance,
		MaxParticipants:      ev.MaxParticipants,
		Price:                ev.Price,
		Status:               ev.Status,
		RegistrationDeadline: ev.RegistrationDeadline,
	})
	if err != nil {
		return err
	}
	if _, err := a.admin.UpdateEvent(ctx, id, in); err != nil {
		return err
	}
	a.success("Event %s updated.", id)
	return nil
}

func (a *App) adminEventDeletePage(ctx context.Context, m guard.Match) error {
	id := models.ID(m.Params["id"])
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete event %s? Type 'yes' to confirm", id), a.out)
	if err != nil {
		return fmt.Errorf("read confirmation: %w", err)
	}
	if !strings.EqualFold(answer, "yes") {
		a.info("Cancelled.")
		return nil
	}
	if err := a.admin.DeleteEvent(ctx, id); err != nil {
		return err
	}
	a.success("Event %s deleted.", id)
	return nil
}

func (a *App) adminUsersPage(ctx context.Context, m guard.Match) error {
	page, err := a.admin.ListUsers(ctx, filterFrom(m.Query))
	if err != nil {
		return err
	}
	a.title("Users")
	if err := a.usersTable(page.Users); err != nil {
		return err
	}
	a.pagination(page.Pagination)
	return nil
}

func (a *App) adminRolePage(ctx context.Context, m guard.Match) error {
	u, err := a.admin.SetUserRole(ctx, models.ID(m.Params["id"]), m.Params["role"])
	if err != nil {
		return err
	}
	a.success("%s is now %s.", u.Name, u.Role)

	// Changing one's own role must show up in the session right away.
	if st := a.auth.State(); st.Identity != nil && st.Identity.ID == u.ID {
		if _, err := a.auth.Refresh(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) adminRegistrationsPage(ctx context.Context, m guard.Match) error {
	page, err := a.admin.ListRegistrations(ctx, filterFrom(m.Query))
	if err != nil {
		return err
	}
	a.title("Registrations")
	if err := a.registrationsTable(page.Registrations, true); err != nil {
		return err
	}
	a.pagination(page.Pagination)
	return nil
}

func (a *App) adminRegStatusPage(ctx context.Context, m guard.Match) error {
	reg, err := a.admin.SetRegistrationStatus(ctx, models.ID(m.Params["id"]), m.Params["status"])
	if err != nil {
		return err
	}
	a.success("Registration %s is now %s.", reg.ID, reg.Status)
	return nil
}

// readEventInput prompts for every event field, offering cur as defaults.
func (a *App) readEventInput(cur models.EventInput) (models.EventInput, error) {
	in := cur
	var err error

	if in.Title, err = getOptionalText(a.reader, "Title", cur.Title, a.out); err != nil {
		return in, fmt.Errorf("read title: %w", err)
	}
	if in.Description, err = getOptionalText(a.reader, "Description", cur.Description, a.out); err != nil {
		return in, fmt.Errorf("read description: %w", err)
	}
	if in.Location, err = getOptionalText(a.reader, "Location", cur.Location, a.out); err != nil {
		return in, fmt.Errorf("read location: %w", err)
	}

	date, err := getOptionalText(a.reader, "Date ("+dateLayout+")", formatTime(cur.Date), a.out)
	if err != nil {
		return in, fmt.Errorf("read date: %w", err)
	}
	if in.Date, err = parseTime(date); err != nil {
		return in, fmt.Errorf("date: %w", err)
	}

	deadline, err := getOptionalText(a.reader, "Registration deadline ("+dateLayout+", optional)", formatTimePtr(cur.RegistrationDeadline), a.out)
	if err != nil {
		return in, fmt.Errorf("read deadline: %w", err)
	}
	in.RegistrationDeadline = nil
	if deadline != "" {
		t, err := parseTime(deadline)
		if err != nil {
			return in, fmt.Errorf("registration deadline: %w", err)
		}
		in.RegistrationDeadline = &t
	}

	dist, err := getOptionalText(a.reader, "Distance (km)", formatFloat(cur.Distance), a.out)
	if err != nil {
		return in, fmt.Errorf("read distance: %w", err)
	}
	if in.Distance, err = strconv.ParseFloat(dist, 64); err != nil {
		return in, fmt.Errorf("distance: %w", err)
	}

	limit, err := getOptionalText(a.reader, "Max participants (0 for unlimited)", strconv.Itoa(cur.MaxParticipants), a.out)
	if err != nil {
		return in, fmt.Errorf("read max participants: %w", err)
	}
	if in.MaxParticipants, err = strconv.Atoi(limit); err != nil {
		return in, fmt.Errorf("max participants: %w", err)
	}

	price, err := getOptionalText(a.reader, "Price", formatFloat(cur.Price), a.out)
	if err != nil {
		return in, fmt.Errorf("read price: %w", err)
	}
	if in.Price, err = strconv.ParseFloat(price, 64); err != nil {
		return in, fmt.Errorf("price: %w", err)
	}

	status, err := getOptionalText(a.reader, "Status", string(cur.Status), a.out)
	if err != nil {
		return in, fmt.Errorf("read status: %w", err)
	}
	in.Status = models.EventStatus(status)

	return in, nil
}

func parseTime(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
