// Package session owns the access-token lifecycle of the console: the initial
// silent refresh, login, logout and the refresh triggered by a 401. It is the
// only writer of the session state; the route guard and the HTTP stack read
// it through Snapshot and Token.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/client"
	"github.com/dmitrijs2005/wedlink-admin/internal/logging"
)

type State int

const (
	Initializing State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot is a read-only view of the session.
type Snapshot struct {
	Token         string
	Authenticated bool
	Loading       bool
	State         State
}

// Manager implements client.Session.
type Manager struct {
	auth  client.AuthAPI
	store TokenStore
	log   logging.Logger

	mu        sync.Mutex
	state     State
	token     string
	listeners []func(Snapshot)

	ready     chan struct{}
	startOnce sync.Once
}

var _ client.Session = (*Manager)(nil)

func NewManager(auth client.AuthAPI, store TokenStore, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{auth: auth, store: store, log: log, ready: make(chan struct{})}
}

// Start resolves the initial state with a silent refresh. Only the first call
// has an effect.
func (m *Manager) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		defer close(m.ready)

		stored, err := m.store.Load(ctx)
		if err != nil {
			m.log.Warn(ctx, "stored token unreadable", "error", err)
		}
		m.mu.Lock()
		m.token = stored
		m.mu.Unlock()

		token, err := m.auth.Refresh(ctx)
		if err != nil {
			m.log.Info(ctx, "no active session", "error", err)
			m.invalidate(ctx)
			return
		}
		m.authenticate(ctx, token)
	})
}

// Wait blocks until Start has resolved the initial state.
func (m *Manager) Wait(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		Token:         m.token,
		Authenticated: m.state == Authenticated,
		Loading:       m.state == Initializing,
		State:         m.state,
	}
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Subscribe registers fn to run after every state transition.
func (m *Manager) Subscribe(fn func(Snapshot)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, err := m.auth.Login(ctx, client.Credentials{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	m.authenticate(ctx, token)
	return nil
}

func (m *Manager) Signup(ctx context.Context, name, email, password string) error {
	if err := m.auth.Signup(ctx, client.Registration{Name: name, Email: email, Password: password}); err != nil {
		return fmt.Errorf("signup error: %w", err)
	}
	return nil
}

// Logout clears the local session first, then asks the backend to invalidate
// its side. The server call is best effort.
func (m *Manager) Logout(ctx context.Context) {
	token := m.Token()
	m.invalidate(ctx)

	if err := m.auth.Logout(ctx, token); err != nil {
		m.log.Warn(ctx, "server logout failed", "error", err)
	}
}

// RefreshAfterUnauthorized is called by the HTTP stack after a 401. A failed
// refresh ends the session.
func (m *Manager) RefreshAfterUnauthorized(ctx context.Context) (string, error) {
	token, err := m.auth.Refresh(ctx)
	if err != nil {
		m.log.Warn(ctx, "session expired", "error", err)
		m.invalidate(ctx)
		if errors.Is(err, client.ErrUnauthorized) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", client.ErrUnauthorized, err)
	}
	m.authenticate(ctx, token)
	return token, nil
}

func (m *Manager) authenticate(ctx context.Context, token string) {
	if err := m.store.Save(ctx, token); err != nil {
		m.log.Warn(ctx, "failed to persist token", "error", err)
	}
	m.transition(Authenticated, token)
}

func (m *Manager) invalidate(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear stored token", "error", err)
	}
	m.transition(Unauthenticated, "")
}

func (m *Manager) transition(state State, token string) {
	m.mu.Lock()
	m.state = state
	m.token = token
	snap := m.snapshotLocked()
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
