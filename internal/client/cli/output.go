package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/runnio/internal/client/client"
	"github.com/dmitrijs2005/runnio/internal/client/models"
	"github.com/dmitrijs2005/runnio/internal/client/services"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const dateLayout = "2006-01-02 15:04"

func (a *App) info(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

func (a *App) success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(a.out, "✓ "+format+"\n", args...)
}

func (a *App) warn(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(a.out, "⚠ "+format+"\n", args...)
}

func (a *App) fail(format string, args ...any) {
	color.New(color.FgRed).Fprintf(a.out, "✗ "+format+"\n", args...)
}

// failResult prints a rejected lifecycle operation with its field errors.
func (a *App) failResult(res services.Result) {
	a.fail("%s", res.Message)
	for _, e := range res.Errors {
		a.info("  - %s", e)
	}
}

// failErr prints err the way the user should see it: server messages
// verbatim, transport failures generically.
func (a *App) failErr(err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		a.failResult(services.Result{Message: apiErr.Message, Errors: apiErr.Errors})
	case errors.Is(err, client.ErrUnavailable):
		a.fail("%s", services.MsgUnavailable)
	default:
		a.fail("%v", err)
	}
}

func (a *App) title(text string) {
	color.New(color.Bold).Fprintf(a.out, "\n%s\n", text)
}

// renderTable prints rows under headers without borders.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func (a *App) eventsTable(events []models.Event) error {
	if len(events) == 0 {
		a.info("No events found.")
		return nil
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			e.ID.String(), e.Title, e.Location, e.Date.Local().Format(dateLayout),
			formatDistance(e.Distance), spots(e), statusText(string(e.Status)),
		})
	}
	return renderTable(a.out, []string{"id", "title", "location", "date", "distance", "spots", "status"}, rows)
}

func (a *App) registrationsTable(regs []models.Registration, withUser bool) error {
	if len(regs) == 0 {
		a.info("No registrations found.")
		return nil
	}
	headers := []string{"id", "event", "date", "bib", "status"}
	if withUser {
		headers = append(headers, "user")
	}
	rows := make([][]string, 0, len(regs))
	for _, r := range regs {
		event := r.EventTitle
		if event == "" {
			event = r.EventID.String()
		}
		row := []string{r.ID.String(), event, formatTimePtr(r.EventDate), r.BibNumber, statusText(string(r.Status))}
		if withUser {
			user := r.UserName
			if user == "" {
				user = r.UserID.String()
			}
			row = append(row, user)
		}
		rows = append(rows, row)
	}
	return renderTable(a.out, headers, rows)
}

func (a *App) usersTable(users []models.Identity) error {
	if len(users) == 0 {
		a.info("No users found.")
		return nil
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID.String(), u.Name, u.Email, roleText(u.Role)})
	}
	return renderTable(a.out, []string{"id", "name", "email", "role"}, rows)
}

func (a *App) pagination(p models.Pagination) {
	if p.Pages > 1 {
		a.info("Page %d of %d (%d total)", p.Page, p.Pages, p.Total)
	}
}

func (a *App) identity(id *models.Identity) error {
	rows := [][]string{
		{"id", id.ID.String()},
		{"name", id.Name},
		{"email", id.Email},
		{"role", roleText(id.Role)},
	}
	if id.Phone != "" {
		rows = append(rows, []string{"phone", id.Phone})
	}
	if id.CreatedAt != nil {
		rows = append(rows, []string{"member since", id.CreatedAt.Local().Format("2006-01-02")})
	}
	return renderTable(a.out, []string{"field", "value"}, rows)
}

func statusText(s string) string {
	switch s {
	case string(models.RegistrationConfirmed), string(models.EventStatusUpcoming):
		return color.GreenString(s)
	case string(models.RegistrationCancelled):
		return color.RedString(s)
	case string(models.RegistrationPending), string(models.EventStatusOngoing):
		return color.YellowString(s)
	default:
		return s
	}
}

func roleText(r models.Role) string {
	if r.IsAdmin() {
		return color.New(color.Bold).Sprint(r.String())
	}
	return r.String()
}

func spots(e models.Event) string {
	left := e.SpotsLeft()
	if left < 0 {
		return "unlimited"
	}
	return strconv.Itoa(left)
}

func formatDistance(km float64) string {
	return strings.TrimSuffix(strings.TrimRight(strconv.FormatFloat(km, 'f', 3, 64), "0"), ".") + " km"
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(dateLayout)
}
