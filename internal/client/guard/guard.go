// Package guard decides which console routes may be shown for the current
// session. Routes are matched with a gorilla/mux table.
package guard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/session"
	"github.com/gorilla/mux"
)

// Route paths.
const (
	PathRoot       = "/"
	PathLogin      = "/login"
	PathSignup     = "/signup"
	PathDashboard  = "/dashboard"
	PathAdminPanel = "/admin-panel"
)

// Route names.
const (
	RouteRoot       = "root"
	RouteLogin      = "login"
	RouteSignup     = "signup"
	RouteDashboard  = "dashboard"
	RouteAdminPanel = "admin-panel"
	RouteEvent      = "event"
	RouteEventEdit  = "event-edit"
)

// EventPath and EventEditPath build the per-event routes.
func EventPath(id string) string     { return "/events/" + url.PathEscape(id) }
func EventEditPath(id string) string { return "/events/edit/" + url.PathEscape(id) }

type access int

const (
	public access = iota
	protected
	entry
)

type Decision int

const (
	Wait Decision = iota
	Allow
	Redirect
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case NotFound:
		return "not-found"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Result is the outcome for one path. Target is set for Redirect and NotFound.
type Result struct {
	Decision Decision
	Route    string
	Vars     map[string]string
	Target   string
}

// Session is the read side of session.Manager.
type Session interface {
	Snapshot() session.Snapshot
	Wait(ctx context.Context) error
}

type Guard struct {
	router  *mux.Router
	access  map[string]access
	session Session
}

func New(s Session) *Guard {
	g := &Guard{router: mux.NewRouter(), access: map[string]access{}, session: s}

	g.add(RouteRoot, PathRoot, entry)
	g.add(RouteLogin, PathLogin, public)
	g.add(RouteSignup, PathSignup, public)
	g.add(RouteDashboard, PathDashboard, protected)
	g.add(RouteAdminPanel, PathAdminPanel, protected)
	g.add(RouteEventEdit, "/events/edit/{id}", protected)
	g.add(RouteEvent, "/events/{id}", protected)

	return g
}

func (g *Guard) add(name, tpl string, a access) {
	g.router.NewRoute().Name(name).Path(tpl)
	g.access[name] = a
}

// Decide returns the decision for path given the current session, without
// blocking. While the session is loading the answer is always Wait.
func (g *Guard) Decide(path string) Result {
	snap := g.session.Snapshot()
	if snap.Loading {
		return Result{Decision: Wait}
	}

	name, vars, ok := g.match(path)
	if !ok {
		return Result{Decision: NotFound, Target: PathRoot}
	}

	switch g.access[name] {
	case entry:
		if snap.Authenticated {
			return Result{Decision: Redirect, Route: name, Target: PathDashboard}
		}
		return Result{Decision: Redirect, Route: name, Target: PathLogin}
	case protected:
		if !snap.Authenticated {
			return Result{Decision: Redirect, Route: name, Target: PathLogin}
		}
	}
	return Result{Decision: Allow, Route: name, Vars: vars}
}

// Resolve waits for the session to finish loading, then decides.
func (g *Guard) Resolve(ctx context.Context, path string) (Result, error) {
	if err := g.session.Wait(ctx); err != nil {
		return Result{Decision: Wait}, err
	}
	return g.Decide(path), nil
}

func (g *Guard) match(path string) (string, map[string]string, bool) {
	u, err := url.Parse(path)
	if err != nil {
		return "", nil, false
	}
	req := &http.Request{Method: http.MethodGet, URL: u}

	var m mux.RouteMatch
	if !g.router.Match(req, &m) || m.Route == nil {
		return "", nil, false
	}
	return m.Route.GetName(), m.Vars, true
}
