package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/guard"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
	"github.com/dmitrijs2005/wedlink-admin/internal/common"
)

// AddGuest prompts for a guest and adds it to the event.
func (a *App) AddGuest(ctx context.Context, eventID string) error {
	if err := a.enter(ctx, guard.EventPath(eventID)); err != nil {
		return err
	}

	in, err := a.promptGuest(models.GuestInput{})
	if err != nil {
		return err
	}

	if err := a.guestService.Add(ctx, eventID, in); err != nil {
		return failed("Failed to save guest", err)
	}

	a.println("Guest added successfully")
	return a.refreshGuests(ctx, eventID)
}

// EditGuest prompts with the guest's current values and saves the changes.
func (a *App) EditGuest(ctx context.Context, eventID, guestID string) error {
	if err := a.enter(ctx, guard.EventPath(eventID)); err != nil {
		return err
	}

	g, err := a.findGuest(ctx, eventID, guestID)
	if err != nil {
		return failed("Failed to load guest", err)
	}

	in, err := a.promptGuest(g.Input())
	if err != nil {
		return err
	}

	if err := a.guestService.Update(ctx, g.ID, in); err != nil {
		return failed("Failed to save guest", err)
	}

	a.println("Guest updated successfully")
	return a.refreshGuests(ctx, eventID)
}

// DeleteGuest removes a guest after confirmation.
func (a *App) DeleteGuest(ctx context.Context, eventID, guestID string) error {
	if err := a.enter(ctx, guard.EventPath(eventID)); err != nil {
		return err
	}

	ok, err := confirm(a.reader, "Are you sure you want to delete this guest?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled")
		return nil
	}

	if err := a.guestService.Delete(ctx, guestID); err != nil {
		return failed("Failed to delete guest", err)
	}

	a.println("Guest deleted successfully")
	return a.refreshGuests(ctx, eventID)
}

// Import bulk-uploads guests from a spreadsheet. ref is a local path, an
// http(s) URL or an s3://bucket/key reference; an empty ref is rejected by
// validation.
func (a *App) Import(ctx context.Context, eventID, ref string) error {
	if err := a.enter(ctx, guard.EventPath(eventID)); err != nil {
		return err
	}

	var upload *models.Upload
	if ref != "" {
		u, err := a.importer.Open(ctx, ref)
		if err != nil {
			return failed("Failed to read "+ref, err)
		}
		upload = u
	}

	if err := a.guestService.BulkUpload(ctx, eventID, upload); err != nil {
		return failed("Failed to upload guests", err)
	}

	a.println("Guests uploaded successfully")
	return a.refreshGuests(ctx, eventID)
}

func (a *App) refreshGuests(ctx context.Context, eventID string) error {
	guests, err := a.guestService.List(ctx, eventID)
	if err != nil {
		return failed("Failed to load guest list", err)
	}
	a.printGuests(guests)
	return nil
}

func (a *App) findGuest(ctx context.Context, eventID, guestID string) (*models.Guest, error) {
	guests, err := a.guestService.List(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for i := range guests {
		if guests[i].ID == guestID || guests[i].GuestID == guestID {
			return &guests[i], nil
		}
	}
	return nil, fmt.Errorf("guest %s: %w", guestID, common.ErrorNotFound)
}

func (a *App) promptGuest(cur models.GuestInput) (models.GuestInput, error) {
	in := cur
	var err error

	if in.Name, err = getDefaultText(a.reader, "Guest name", cur.Name, a.out); err != nil {
		return in, err
	}
	if in.WhatsApp, err = getDefaultText(a.reader, "WhatsApp number", cur.WhatsApp, a.out); err != nil {
		return in, err
	}
	if in.Email, err = getDefaultText(a.reader, "Email (optional)", cur.Email, a.out); err != nil {
		return in, err
	}
	return in, nil
}
