package cli

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/client"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/config"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/guard"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/services"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/session"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/sources"
	"github.com/dmitrijs2005/wedlink-admin/internal/filex"
	"github.com/dmitrijs2005/wedlink-admin/internal/logging"
	"github.com/jonboulle/clockwork"

	_ "modernc.org/sqlite"
)

const dbFileName = "wedlink.db"

// sessionRunner is the part of session.Manager the console drives directly.
type sessionRunner interface {
	guard.Session
	Start(ctx context.Context)
	Subscribe(fn func(session.Snapshot))
}

// importer resolves a spreadsheet reference to its bytes.
type importer interface {
	Open(ctx context.Context, ref string) (*models.Upload, error)
}

type App struct {
	config          *config.Config
	session         sessionRunner
	router          *guard.Router
	authService     services.AuthService
	eventService    services.EventService
	guestService    services.GuestService
	overviewService services.OverviewService
	importer        importer
	newNameChecker  func(ctx context.Context) *services.NameChecker
	reader          *bufio.Reader
	out             io.Writer
	log             logging.Logger
	closeFn         func() error

	mu    sync.Mutex
	email string
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, dbFileName))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	jar, err := client.NewPersistentJar(ctx, metadata.NewSQLiteRepository(db), log.With("component", "cookie-jar"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug(ctx, "cookie jar restored", "cookies", jar.Len())

	a := &App{
		config:  c,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		log:     log,
		closeFn: db.Close,
	}

	stack := client.NewStack(client.Options{
		BaseURL:         c.APIBaseURL,
		Timeout:         c.RequestTimeout,
		RateLimit:       c.RateLimit,
		RateBurst:       c.RateBurst,
		DedupeRefresh:   c.DedupeRefresh,
		Jar:             jar,
		Logger:          log,
		OnLoginRequired: a.onLoginRequired,
	})

	manager := session.NewManager(
		stack.AuthClient(),
		session.NewSQLiteTokenStore(db, c.TokenSecret),
		log.With("component", "session"),
	)
	api := stack.APIClient(manager)

	a.session = manager
	a.router = guard.NewRouter(guard.New(manager))
	a.authService = services.NewAuthService(manager)
	a.eventService = services.NewEventService(api)
	a.guestService = services.NewGuestService(api)
	a.overviewService = services.NewOverviewService(api)
	a.importer = sources.NewOpener(sources.S3Settings{
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	}, &http.Client{Timeout: c.RequestTimeout})

	clock := clockwork.NewRealClock()
	a.newNameChecker = func(ctx context.Context) *services.NameChecker {
		return services.NewNameChecker(ctx, a.eventService, services.NameCheckerOptions{
			Clock:     clock,
			Delay:     c.NameCheckDelay,
			MinLength: c.NameCheckMinLength,
			Logger:    log.With("component", "name-check"),
		})
	}

	return a, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.closeFn != nil {
			_ = a.closeFn()
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated
}

// onLoginRequired runs on the request path when a 401 could not be recovered.
func (a *App) onLoginRequired(ctx context.Context) {
	a.log.Info(ctx, "session ended by the server")
	a.println("Your session has expired. Please log in again.")
	a.router.Force(guard.PathLogin)
}

// trackAccount keeps the prompt's account label in step with the session.
func (a *App) trackAccount(s session.Snapshot) {
	email := ""
	if s.Authenticated {
		if acc, err := session.ParseAccount(s.Token); err == nil {
			email = acc.Email
		}
	}
	a.mu.Lock()
	a.email = email
	a.mu.Unlock()
}

func (a *App) accountEmail() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.email
}
