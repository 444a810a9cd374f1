package client

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/wedlink-admin/internal/logging"
)

// Options configures the HTTP stack shared by AuthClient and HTTPClient.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	RateLimit     float64
	RateBurst     int
	DedupeRefresh bool

	Jar    http.CookieJar
	Logger logging.Logger
	// Base is the innermost transport; http.DefaultTransport when nil.
	Base http.RoundTripper
	// OnLoginRequired runs when the 401 recovery fails.
	OnLoginRequired func(ctx context.Context)
}

// Stack builds the two clients over one rate limiter and one cookie jar:
//
//	API:  AuthTransport -> LoggedTransport -> RateLimitedTransport -> Base
//	Auth:                  LoggedTransport -> RateLimitedTransport -> Base
type Stack struct {
	opts   Options
	logged http.RoundTripper
}

func NewStack(opts Options) *Stack {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	limited := NewRateLimitedTransport(opts.Base, opts.RateLimit, opts.RateBurst)
	return &Stack{opts: opts, logged: NewLoggedTransport(limited, opts.Logger)}
}

func (s *Stack) httpClient(rt http.RoundTripper) *http.Client {
	return &http.Client{Transport: rt, Jar: s.opts.Jar, Timeout: s.opts.Timeout}
}

// AuthClient returns the client for /auth endpoints.
func (s *Stack) AuthClient() *AuthClient {
	return NewAuthClient(s.opts.BaseURL, s.httpClient(s.logged))
}

// APIClient returns the authenticated client bound to session.
func (s *Stack) APIClient(session Session) *HTTPClient {
	t := NewAuthTransport(s.logged, session,
		WithRefreshDedupe(s.opts.DedupeRefresh),
		WithLoginRequired(s.opts.OnLoginRequired),
		WithTransportLogger(s.opts.Logger.With("component", "auth-transport")),
	)
	return NewHTTPClient(s.opts.BaseURL, s.httpClient(t))
}
