package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/client"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/guard"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/services"
	"github.com/dmitrijs2005/wedlink-admin/internal/common"
)

var errLoginRequired = errors.New("login required")

// opError prefixes a failure with what the user was trying to do.
type opError struct {
	msg string
	err error
}

func (e *opError) Error() string { return e.msg + ": " + e.err.Error() }
func (e *opError) Unwrap() error { return e.err }

func failed(msg string, err error) error {
	return &opError{msg: msg, err: err}
}

// describeError turns err into the line shown to the user.
func describeError(err error) string {
	if msg, ok := services.FieldMessage(err); ok {
		return msg
	}
	if errors.Is(err, services.ErrNameTaken) {
		return "Event name already exists"
	}

	detail := errorDetail(err)

	var op *opError
	if errors.As(err, &op) {
		if detail == "" {
			detail = op.err.Error()
		}
		return op.msg + ": " + detail
	}
	if detail != "" {
		return detail
	}
	return err.Error()
}

func errorDetail(err error) string {
	switch {
	case errors.Is(err, errLoginRequired), errors.Is(err, common.ErrNoToken):
		return "Please log in first."
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, please try again later"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	}
	if m := client.Message(err); m != "" {
		return m
	}
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return "your session has expired, please log in again"
	case errors.Is(err, common.ErrorNotFound):
		return "not found"
	}
	return ""
}

// enter navigates to path and fails unless the guard lets the console stay
// there.
func (a *App) enter(ctx context.Context, path string) error {
	_, landed, err := a.router.Navigate(ctx, path)
	if err != nil {
		return err
	}
	if landed == path {
		return nil
	}
	if landed == guard.PathLogin {
		return errLoginRequired
	}
	return fmt.Errorf("%s: %w", path, common.ErrorNotFound)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printEvents(events []models.Event) {
	if len(events) == 0 {
		a.println("No events yet. Use 'addevent' to create one.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDATE\tLOCATION\tTEMPLATE")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Date, e.Location, e.Template)
	}
	_ = tw.Flush()
}

func (a *App) printEvent(e *models.Event) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Event:\t%s\n", e.Name)
	fmt.Fprintf(tw, "ID:\t%s\n", e.ID)
	fmt.Fprintf(tw, "Couple:\t%s & %s\n", e.GroomName, e.BrideName)
	fmt.Fprintf(tw, "Location:\t%s\n", e.Location)
	fmt.Fprintf(tw, "Date:\t%s\n", e.Date)
	fmt.Fprintf(tw, "Template:\t%s\n", e.Template)
	if e.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", strings.ReplaceAll(e.Description, "\n", "\n\t"))
	}
	_ = tw.Flush()
}

func (a *App) printGuests(guests []models.Guest) {
	if len(guests) == 0 {
		a.println("No guests yet.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tWHATSAPP\tEMAIL")
	for _, g := range guests {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.ID, g.Name, g.WhatsApp, g.Email)
	}
	_ = tw.Flush()
}

const barWidth = 40

// bar renders a percentage as a fixed-width bar.
func bar(percent float64) string {
	n := int(percent/100*barWidth + 0.5)
	n = max(0, min(barWidth, n))
	return strings.Repeat("#", n) + strings.Repeat(".", barWidth-n)
}
