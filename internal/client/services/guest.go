package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/client"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
)

// GuestService defines guest list operations for one event at a time.
type GuestService interface {
	List(ctx context.Context, eventID string) ([]models.Guest, error)
	Add(ctx context.Context, eventID string, in models.GuestInput) error
	Update(ctx context.Context, guestID string, in models.GuestInput) error
	Delete(ctx context.Context, guestID string) error
	// BulkUpload posts a spreadsheet of guests. A nil upload means no file
	// was chosen.
	BulkUpload(ctx context.Context, eventID string, file *models.Upload) error
}

type guestService struct {
	client client.Client
}

func NewGuestService(c client.Client) GuestService {
	return &guestService{client: c}
}

func (s *guestService) List(ctx context.Context, eventID string) ([]models.Guest, error) {
	guests, err := s.client.ListGuests(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

func (s *guestService) Add(ctx context.Context, eventID string, in models.GuestInput) error {
	in = normalizeGuest(in)
	if err := ValidateGuest(in); err != nil {
		return err
	}
	if err := s.client.AddGuest(ctx, eventID, in); err != nil {
		return fmt.Errorf("add guest: %w", err)
	}
	return nil
}

func (s *guestService) Update(ctx context.Context, guestID string, in models.GuestInput) error {
	in = normalizeGuest(in)
	if err := ValidateGuest(in); err != nil {
		return err
	}
	if err := s.client.UpdateGuest(ctx, guestID, in); err != nil {
		return fmt.Errorf("update guest: %w", err)
	}
	return nil
}

func (s *guestService) Delete(ctx context.Context, guestID string) error {
	if err := s.client.DeleteGuest(ctx, guestID); err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	return nil
}

func (s *guestService) BulkUpload(ctx context.Context, eventID string, file *models.Upload) error {
	if err := ValidateUpload(file); err != nil {
		return err
	}
	if err := s.client.UploadGuests(ctx, eventID, *file); err != nil {
		return fmt.Errorf("upload guests: %w", err)
	}
	return nil
}

func normalizeGuest(in models.GuestInput) models.GuestInput {
	in.Name = strings.TrimSpace(in.Name)
	in.WhatsApp = strings.TrimSpace(in.WhatsApp)
	in.Email = strings.TrimSpace(in.Email)
	return in
}
