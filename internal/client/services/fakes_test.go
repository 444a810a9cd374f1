package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/client"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/session"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	mu sync.Mutex

	Events      []models.Event
	Event       *models.Event
	Guests      []models.Guest
	OverviewRet *models.Overview
	Existing    map[string]bool

	ListErr     error
	GetErr      error
	CheckErr    error
	CreateErr   error
	UpdateErr   error
	DeleteErr   error
	GuestErr    error
	UploadErr   error
	OverviewErr error

	Calls        []string
	Checked      []string
	LastCreate   models.EventInput
	LastUpdate   models.EventInput
	LastGuest    models.GuestInput
	LastUpload   models.Upload
	LastDeleteID string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	f.Calls = append(f.Calls, call)
	f.mu.Unlock()
}

func (f *fakeClient) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}

func (f *fakeClient) ListEvents(ctx context.Context) ([]models.Event, error) {
	f.record("ListEvents")
	return f.Events, f.ListErr
}

func (f *fakeClient) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	f.record("GetEvent " + id)
	return f.Event, f.GetErr
}

func (f *fakeClient) EventNameExists(ctx context.Context, name string) (bool, error) {
	f.record("EventNameExists " + name)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Checked = append(f.Checked, name)
	if f.CheckErr != nil {
		return true, f.CheckErr
	}
	return f.Existing[name], nil
}

func (f *fakeClient) CreateEvent(ctx context.Context, in models.EventInput) error {
	f.record("CreateEvent")
	f.LastCreate = in
	return f.CreateErr
}

func (f *fakeClient) UpdateEvent(ctx context.Context, id string, in models.EventInput) error {
	f.record("UpdateEvent " + id)
	f.LastUpdate = in
	return f.UpdateErr
}

func (f *fakeClient) DeleteEvent(ctx context.Context, id string) error {
	f.record("DeleteEvent " + id)
	f.LastDeleteID = id
	return f.DeleteErr
}

func (f *fakeClient) ListGuests(ctx context.Context, eventID string) ([]models.Guest, error) {
	f.record("ListGuests " + eventID)
	return f.Guests, f.GuestErr
}

func (f *fakeClient) AddGuest(ctx context.Context, eventID string, in models.GuestInput) error {
	f.record("AddGuest " + eventID)
	f.LastGuest = in
	return f.GuestErr
}

func (f *fakeClient) UpdateGuest(ctx context.Context, guestID string, in models.GuestInput) error {
	f.record("UpdateGuest " + guestID)
	f.LastGuest = in
	return f.GuestErr
}

func (f *fakeClient) DeleteGuest(ctx context.Context, guestID string) error {
	f.record("DeleteGuest " + guestID)
	f.LastDeleteID = guestID
	return f.GuestErr
}

func (f *fakeClient) UploadGuests(ctx context.Context, eventID string, file models.Upload) error {
	f.record("UploadGuests " + eventID)
	f.LastUpload = file
	return f.UploadErr
}

func (f *fakeClient) Overview(ctx context.Context) (*models.Overview, error) {
	f.record("Overview")
	return f.OverviewRet, f.OverviewErr
}

// fakeSession implements SessionManager.
type fakeSession struct {
	LoginErr  error
	SignupErr error
	Snap      session.Snapshot

	LastEmail    string
	LastPassword string
	LastName     string
	LoggedOut    bool
}

func (f *fakeSession) Login(ctx context.Context, email, password string) error {
	f.LastEmail, f.LastPassword = email, password
	if f.LoginErr == nil {
		f.Snap = session.Snapshot{Token: "t", Authenticated: true, State: session.Authenticated}
	}
	return f.LoginErr
}

func (f *fakeSession) Signup(ctx context.Context, name, email, password string) error {
	f.LastName, f.LastEmail, f.LastPassword = name, email, password
	return f.SignupErr
}

func (f *fakeSession) Logout(ctx context.Context) {
	f.LoggedOut = true
	f.Snap = session.Snapshot{State: session.Unauthenticated}
}

func (f *fakeSession) Snapshot() session.Snapshot { return f.Snap }
