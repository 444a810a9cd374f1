package client

import (
	"context"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
)

// Client is the authenticated part of the WedLink API used by the screens.
type Client interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	EventNameExists(ctx context.Context, name string) (bool, error)
	CreateEvent(ctx context.Context, in models.EventInput) error
	UpdateEvent(ctx context.Context, id string, in models.EventInput) error
	DeleteEvent(ctx context.Context, id string) error

	ListGuests(ctx context.Context, eventID string) ([]models.Guest, error)
	AddGuest(ctx context.Context, eventID string, in models.GuestInput) error
	UpdateGuest(ctx context.Context, guestID string, in models.GuestInput) error
	DeleteGuest(ctx context.Context, guestID string) error
	UploadGuests(ctx context.Context, eventID string, file models.Upload) error

	Overview(ctx context.Context) (*models.Overview, error)
}

// AuthAPI is the unauthenticated /auth surface used by the session manager.
type AuthAPI interface {
	Signup(ctx context.Context, r Registration) error
	Login(ctx context.Context, cr Credentials) (string, error)
	Refresh(ctx context.Context) (string, error)
	Logout(ctx context.Context, token string) error
}

var (
	_ Client  = (*HTTPClient)(nil)
	_ AuthAPI = (*AuthClient)(nil)
)
