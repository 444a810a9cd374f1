package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/guard"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/services"
)

// Dashboard lists the admin's events.
func (a *App) Dashboard(ctx context.Context) error {
	if err := a.enter(ctx, guard.PathDashboard); err != nil {
		return err
	}
	return a.refreshEvents(ctx)
}

func (a *App) refreshEvents(ctx context.Context) error {
	events, err := a.eventService.List(ctx)
	if err != nil {
		return failed("Failed to load events", err)
	}
	a.printEvents(events)
	return nil
}

// ShowEvent prints one event with its guest list.
func (a *App) ShowEvent(ctx context.Context, id string) error {
	if err := a.enter(ctx, guard.EventPath(id)); err != nil {
		return err
	}

	e, err := a.eventService.Get(ctx, id)
	if err != nil {
		return failed("Failed to load event or guest list", err)
	}
	guests, err := a.guestService.List(ctx, id)
	if err != nil {
		return failed("Failed to load event or guest list", err)
	}

	a.printEvent(e)
	a.println()
	a.printGuests(guests)
	return nil
}

// AddEvent prompts for a new event. The name is checked against existing
// events in the background while the rest of the form is filled in, and
// the create is refused if the settled check says the name is taken.
func (a *App) AddEvent(ctx context.Context) error {
	if err := a.enter(ctx, guard.PathDashboard); err != nil {
		return err
	}

	nc := a.newNameChecker(ctx)
	defer nc.Close()

	name, err := getSimpleText(a.reader, "Event name", a.out)
	if err != nil {
		return err
	}
	nc.Observe(name)

	in, err := a.promptEvent(models.EventInput{Name: name, Template: models.DefaultTemplate}, false)
	if err != nil {
		return err
	}

	if msg := nameCheckNotice(nc.Result()); msg != "" {
		a.println(msg)
	}
	if err := a.eventService.Create(ctx, in, nc); err != nil {
		return failed("Failed to create event", err)
	}

	a.println("Event created successfully")
	return a.refreshEvents(ctx)
}

// nameCheckNotice is shown before the create request goes out.
func nameCheckNotice(r services.NameCheck) string {
	switch {
	case r.Pending:
		return "Checking event name..."
	case r.Checked && r.Exists:
		return "Event name already exists"
	}
	return ""
}

// EditEvent loads an event, prompts with its current values and saves the
// changes.
func (a *App) EditEvent(ctx context.Context, id string) error {
	if err := a.enter(ctx, guard.EventEditPath(id)); err != nil {
		return err
	}

	e, err := a.eventService.Get(ctx, id)
	if err != nil {
		return failed("Failed to load event data", err)
	}

	in, err := a.promptEvent(e.Input(), true)
	if err != nil {
		return err
	}

	if err := a.eventService.Update(ctx, id, in); err != nil {
		return failed("Failed to update event", err)
	}

	a.println("Event updated successfully")
	return a.ShowEvent(ctx, id)
}

// DeleteEvent removes an event after confirmation.
func (a *App) DeleteEvent(ctx context.Context, id string) error {
	if err := a.enter(ctx, guard.PathDashboard); err != nil {
		return err
	}

	ok, err := confirm(a.reader, "Are you sure you want to delete this event?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled")
		return nil
	}

	if err := a.eventService.Delete(ctx, id); err != nil {
		return failed("Failed to delete", err)
	}

	a.println("Event deleted")
	return a.refreshEvents(ctx)
}

// promptEvent fills in an event form starting from cur. With editName the
// name is prompted too; otherwise cur.Name is kept.
func (a *App) promptEvent(cur models.EventInput, editName bool) (models.EventInput, error) {
	in := cur
	var err error

	if editName {
		if in.Name, err = getDefaultText(a.reader, "Event name", cur.Name, a.out); err != nil {
			return in, err
		}
	}
	if in.GroomName, err = getDefaultText(a.reader, "Groom name", cur.GroomName, a.out); err != nil {
		return in, err
	}
	if in.BrideName, err = getDefaultText(a.reader, "Bride name", cur.BrideName, a.out); err != nil {
		return in, err
	}
	if in.Location, err = getDefaultText(a.reader, "Location", cur.Location, a.out); err != nil {
		return in, err
	}

	date, err := getDefaultText(a.reader, "Date (YYYY-MM-DD)", cur.Date.String(), a.out)
	if err != nil {
		return in, err
	}
	if strings.TrimSpace(date) == "" {
		in.Date = models.Date{}
	} else {
		d, perr := models.ParseDate(strings.TrimSpace(date))
		if perr != nil {
			return in, &services.ValidationError{Field: "date", Message: "Please enter a valid date (YYYY-MM-DD)"}
		}
		in.Date = d
	}

	prompt := "Description (optional)"
	if cur.Description != "" {
		prompt = "Description (leave empty to keep the current one)"
	}
	desc, err := getMultiline(a.reader, prompt, a.out)
	if err != nil {
		return in, err
	}
	if desc != "" {
		in.Description = desc
	}

	tpl, err := getDefaultText(a.reader, "Template (template1 = Classic, template2 = Modern)", string(cur.Template), a.out)
	if err != nil {
		return in, err
	}
	in.Template = models.Template(tpl)

	return in, nil
}
