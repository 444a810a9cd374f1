package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/client"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
	"github.com/dmitrijs2005/wedlink-admin/internal/common"
)

// EventService defines event operations for the console.
//
// Create refuses to post when the settled name check says the name exists.
// Update does not load anything itself; the edit screen fetches the event
// first and prefills the form from it.
type EventService interface {
	List(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	CheckName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, in models.EventInput, check *NameChecker) error
	Update(ctx context.Context, id string, in models.EventInput) error
	Delete(ctx context.Context, id string) error
}

// ErrNameTaken blocks creating an event whose name is already in use.
var ErrNameTaken = fmt.Errorf("event name already exists: %w", common.ErrConflict)

type eventService struct {
	client client.Client
}

func NewEventService(c client.Client) EventService {
	return &eventService{client: c}
}

func (s *eventService) List(ctx context.Context) ([]models.Event, error) {
	events, err := s.client.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*models.Event, error) {
	if blank(id) {
		return nil, invalid("id", "Event id is required")
	}
	e, err := s.client.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (s *eventService) CheckName(ctx context.Context, name string) (bool, error) {
	return s.client.EventNameExists(ctx, strings.TrimSpace(name))
}

func (s *eventService) Create(ctx context.Context, in models.EventInput, check *NameChecker) error {
	in = normalizeEvent(in)
	if err := ValidateEvent(in); err != nil {
		return err
	}

	if check != nil {
		r, err := check.Settle(ctx)
		if err != nil {
			return err
		}
		if r.Exists && r.Name == in.Name {
			return ErrNameTaken
		}
	}

	if err := s.client.CreateEvent(ctx, in); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) Update(ctx context.Context, id string, in models.EventInput) error {
	in = normalizeEvent(in)
	if err := ValidateEvent(in); err != nil {
		return err
	}
	if err := s.client.UpdateEvent(ctx, id, in); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func normalizeEvent(in models.EventInput) models.EventInput {
	in.Name = strings.TrimSpace(in.Name)
	in.GroomName = strings.TrimSpace(in.GroomName)
	in.BrideName = strings.TrimSpace(in.BrideName)
	in.Location = strings.TrimSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)
	if in.Template == "" {
		in.Template = models.DefaultTemplate
	}
	return in
}
