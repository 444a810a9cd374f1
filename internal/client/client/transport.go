package client

import (
	"context"
	"io"
	"net/http"

	"github.com/dmitrijs2005/wedlink-admin/internal/common"
	"github.com/dmitrijs2005/wedlink-admin/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Session is what AuthTransport needs from the session manager.
type Session interface {
	// Token returns the current access token or "".
	Token() string
	// RefreshAfterUnauthorized obtains and stores a new access token. On
	// failure the session has already been cleared.
	RefreshAfterUnauthorized(ctx context.Context) (string, error)
}

// attempt is the per-request retry state. It travels on the request context
// so concurrent requests never share it.
type attempt int

const (
	attemptInitial attempt = iota
	attemptReplay
)

type attemptKey struct{}

func attemptOf(ctx context.Context) attempt {
	if a, ok := ctx.Value(attemptKey{}).(attempt); ok {
		return a
	}
	return attemptInitial
}

func withAttempt(ctx context.Context, a attempt) context.Context {
	return context.WithValue(ctx, attemptKey{}, a)
}

// AuthTransport attaches the bearer token to every request and recovers from
// an expired token once: on a 401 it refreshes, then replays the request a
// single time. A 401 on the replay, or a failed refresh, reaches the caller.
type AuthTransport struct {
	next    http.RoundTripper
	session Session
	log     logging.Logger

	// onLoginRequired runs after a failed refresh.
	onLoginRequired func(ctx context.Context)

	dedupe bool
	group  singleflight.Group
}

type TransportOption func(*AuthTransport)

// WithLoginRequired sets the hook run when a refresh fails.
func WithLoginRequired(fn func(ctx context.Context)) TransportOption {
	return func(t *AuthTransport) { t.onLoginRequired = fn }
}

// WithRefreshDedupe makes concurrent 401s share one in-flight refresh call.
// Off by default: every 401 refreshes on its own.
func WithRefreshDedupe(on bool) TransportOption {
	return func(t *AuthTransport) { t.dedupe = on }
}

func WithTransportLogger(l logging.Logger) TransportOption {
	return func(t *AuthTransport) { t.log = l }
}

func NewAuthTransport(next http.RoundTripper, session Session, opts ...TransportOption) *AuthTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	t := &AuthTransport{next: next, session: session, log: logging.Nop()}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	state := attemptOf(ctx)

	resp, err := t.next.RoundTrip(authorize(req, t.session.Token()))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	if state == attemptReplay {
		t.log.Warn(ctx, "request rejected after token refresh", "method", req.Method, "path", req.URL.Path)
		return resp, nil
	}
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		t.log.Warn(ctx, "unauthorized request cannot be replayed", "method", req.Method, "path", req.URL.Path)
		return resp, nil
	}

	token, err := t.refresh(ctx)
	if err != nil {
		t.log.Warn(ctx, "token refresh failed, login required", "error", err)
		if t.onLoginRequired != nil {
			t.onLoginRequired(ctx)
		}
		return resp, nil
	}

	replay, err := rewind(req, withAttempt(ctx, attemptReplay))
	if err != nil {
		return resp, nil
	}
	drain(resp)

	t.log.Debug(ctx, "replaying request with refreshed token", "method", req.Method, "path", req.URL.Path)
	return t.RoundTrip(authorize(replay, token))
}

func (t *AuthTransport) refresh(ctx context.Context) (string, error) {
	if !t.dedupe {
		return t.session.RefreshAfterUnauthorized(ctx)
	}
	v, err, shared := t.group.Do("refresh", func() (any, error) {
		return t.session.RefreshAfterUnauthorized(ctx)
	})
	if shared {
		t.log.Debug(ctx, "joined in-flight token refresh")
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// authorize returns a copy of req carrying token. The caller's request is
// never modified.
func authorize(req *http.Request, token string) *http.Request {
	out := req.Clone(req.Context())
	out.Header.Del(common.AuthorizationHeaderName)
	if token != "" {
		out.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	return out
}

func rewind(req *http.Request, ctx context.Context) (*http.Request, error) {
	out := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		out.Body = body
	}
	return out, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
