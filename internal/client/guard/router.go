package guard

import (
	"context"
	"fmt"
	"sync"
)

const maxRedirects = 4

// Router holds the console's current route and moves it according to the
// guard's decisions.
type Router struct {
	guard *Guard

	mu      sync.Mutex
	current Result
	path    string
}

func NewRouter(g *Guard) *Router {
	return &Router{guard: g}
}

// Navigate resolves path, following redirects, and makes the final route
// current. It returns the path that was landed on.
func (r *Router) Navigate(ctx context.Context, path string) (Result, string, error) {
	for range maxRedirects {
		res, err := r.guard.Resolve(ctx, path)
		if err != nil {
			return res, path, err
		}

		switch res.Decision {
		case Allow:
			r.mu.Lock()
			r.current, r.path = res, path
			r.mu.Unlock()
			return res, path, nil
		case Redirect, NotFound:
			path = res.Target
		default:
			return res, path, fmt.Errorf("unexpected decision %s for %s", res.Decision, path)
		}
	}
	return Result{}, path, fmt.Errorf("too many redirects from %s", path)
}

// Force moves the current route without consulting the guard. Used when the
// session ends underneath the console.
func (r *Router) Force(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, vars, _ := r.guard.match(path)
	r.current = Result{Decision: Allow, Route: name, Vars: vars}
	r.path = path
}

// Current returns the current route and its path.
func (r *Router) Current() (Result, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.path
}
