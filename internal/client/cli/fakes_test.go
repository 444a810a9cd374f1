package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/client"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/guard"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/services"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/session"
	"github.com/dmitrijs2005/wedlink-admin/internal/logging"
)

type fakeSession struct {
	mu      sync.Mutex
	snap    session.Snapshot
	subs    []func(session.Snapshot)
	started atomic.Bool
}

func (f *fakeSession) set(authenticated bool, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = session.Snapshot{Authenticated: authenticated, Token: token, State: session.Unauthenticated}
	if authenticated {
		f.snap.State = session.Authenticated
	}
}

func (f *fakeSession) Snapshot() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeSession) Wait(ctx context.Context) error { return ctx.Err() }
func (f *fakeSession) Start(context.Context)          { f.started.Store(true) }

func (f *fakeSession) Subscribe(fn func(session.Snapshot)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
}

type fakeAuth struct {
	sess *fakeSession

	loginToken string
	loginErr   error
	signupErr  error
	account    session.Account

	logins  []string
	signups []string
	logouts int
}

func (f *fakeAuth) Signup(ctx context.Context, name, email, password string) error {
	f.signups = append(f.signups, name+"|"+email+"|"+password)
	return f.signupErr
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) error {
	f.logins = append(f.logins, email+"|"+password)
	if f.loginErr != nil {
		return f.loginErr
	}
	f.sess.set(true, f.loginToken)
	return nil
}

func (f *fakeAuth) Logout(ctx context.Context) {
	f.logouts++
	f.sess.set(false, "")
}

func (f *fakeAuth) Account() (session.Account, session.Snapshot, error) {
	snap := f.sess.Snapshot()
	if !snap.Authenticated {
		return session.Account{}, snap, session.ErrNotAuthenticated
	}
	return f.account, snap, nil
}

type fakeEvents struct {
	list      []models.Event
	event     *models.Event
	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	listCalls  int
	created    []models.EventInput
	updatedID  string
	updated    models.EventInput
	deletedIDs []string
}

func (f *fakeEvents) List(ctx context.Context) ([]models.Event, error) {
	f.listCalls++
	return f.list, f.listErr
}

func (f *fakeEvents) Get(ctx context.Context, id string) (*models.Event, error) {
	return f.event, f.getErr
}

func (f *fakeEvents) CheckName(ctx context.Context, name string) (bool, error) {
	return false, nil
}

func (f *fakeEvents) Create(ctx context.Context, in models.EventInput, check *services.NameChecker) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, in)
	return nil
}

func (f *fakeEvents) Update(ctx context.Context, id string, in models.EventInput) error {
	f.updatedID, f.updated = id, in
	return f.updateErr
}

func (f *fakeEvents) Delete(ctx context.Context, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return f.deleteErr
}

type fakeGuests struct {
	list      []models.Guest
	listErr   error
	addErr    error
	uploadErr error

	listCalls  int
	addedTo    string
	added      models.GuestInput
	updatedID  string
	updated    models.GuestInput
	deletedIDs []string
	uploads    []*models.Upload
}

func (f *fakeGuests) List(ctx context.Context, eventID string) ([]models.Guest, error) {
	f.listCalls++
	return f.list, f.listErr
}

func (f *fakeGuests) Add(ctx context.Context, eventID string, in models.GuestInput) error {
	f.addedTo, f.added = eventID, in
	return f.addErr
}

func (f *fakeGuests) Update(ctx context.Context, guestID string, in models.GuestInput) error {
	f.updatedID, f.updated = guestID, in
	return nil
}

func (f *fakeGuests) Delete(ctx context.Context, guestID string) error {
	f.deletedIDs = append(f.deletedIDs, guestID)
	return nil
}

func (f *fakeGuests) BulkUpload(ctx context.Context, eventID string, file *models.Upload) error {
	f.uploads = append(f.uploads, file)
	return f.uploadErr
}

type fakeOverview struct {
	stats *services.Stats
	err   error
}

func (f *fakeOverview) Get(ctx context.Context) (*services.Stats, error) {
	return f.stats, f.err
}

type fakeImporter struct {
	upload *models.Upload
	err    error
	refs   []string
}

func (f *fakeImporter) Open(ctx context.Context, ref string) (*models.Upload, error) {
	f.refs = append(f.refs, ref)
	return f.upload, f.err
}

// fakeAPI backs the real event service. Only the methods the event screens
// reach are implemented.
type fakeAPI struct {
	client.Client

	mu      sync.Mutex
	taken   map[string]bool
	checked []string
	created []models.EventInput
}

func (f *fakeAPI) EventNameExists(ctx context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checked = append(f.checked, name)
	return f.taken[name], nil
}

func (f *fakeAPI) CreateEvent(ctx context.Context, in models.EventInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	return nil
}

func (f *fakeAPI) ListEvents(ctx context.Context) ([]models.Event, error) {
	return nil, nil
}

type testEnv struct {
	app      *App
	sess     *fakeSession
	auth     *fakeAuth
	events   *fakeEvents
	guests   *fakeGuests
	overview *fakeOverview
	importer *fakeImporter
	out      *bytes.Buffer
}

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// noTerminal makes GetPassword read from the line reader.
func noTerminal(t *testing.T) {
	t.Helper()
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })
	isTerminal = func(int) bool { return false }
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })
	printlnFn = func(...any) (int, error) { return 0, nil }
}

func newTestEnv(t *testing.T, authenticated bool, lines ...string) *testEnv {
	t.Helper()
	noTerminal(t)

	sess := &fakeSession{}
	sess.set(authenticated, "")

	env := &testEnv{
		sess:     sess,
		auth:     &fakeAuth{sess: sess, loginToken: "a-1"},
		events:   &fakeEvents{},
		guests:   &fakeGuests{},
		overview: &fakeOverview{},
		importer: &fakeImporter{},
		out:      &bytes.Buffer{},
	}

	env.app = &App{
		session:         sess,
		router:          guard.NewRouter(guard.New(sess)),
		authService:     env.auth,
		eventService:    env.events,
		guestService:    env.guests,
		overviewService: env.overview,
		importer:        env.importer,
		reader:          readerFromLines(lines...),
		out:             env.out,
		log:             logging.Nop(),
	}
	env.app.newNameChecker = func(ctx context.Context) *services.NameChecker {
		return services.NewNameChecker(ctx, env.app.eventService, services.NameCheckerOptions{MinLength: 3})
	}
	return env
}

// useRealEvents swaps the fake event service for the real one over api.
func (e *testEnv) useRealEvents(api *fakeAPI) {
	e.app.eventService = services.NewEventService(api)
}
