package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
)

// fakeSession is a hand-written Session.
type fakeSession struct {
	mu    sync.Mutex
	token string

	refreshCalls atomic.Int32
	// refreshFn, when set, decides the refresh outcome.
	refreshFn func(ctx context.Context) (string, error)
}

func (f *fakeSession) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeSession) setToken(t string) {
	f.mu.Lock()
	f.token = t
	f.mu.Unlock()
}

func (f *fakeSession) RefreshAfterUnauthorized(ctx context.Context) (string, error) {
	f.refreshCalls.Add(1)
	if f.refreshFn == nil {
		f.setToken("")
		return "", errors.New("refresh rejected")
	}
	tok, err := f.refreshFn(ctx)
	if err != nil {
		f.setToken("")
		return "", err
	}
	f.setToken(tok)
	return tok, nil
}

// fakeBackend routes requests with gorilla/mux and records what it saw.
type fakeBackend struct {
	*httptest.Server
	router *mux.Router

	mu   sync.Mutex
	hits map[string]int
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{router: mux.NewRouter(), hits: map[string]int{}}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[r.Method+" "+r.URL.Path]++
		b.mu.Unlock()
		b.router.ServeHTTP(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

func (b *fakeBackend) handle(method, path string, fn http.HandlerFunc) {
	b.router.HandleFunc("/api"+path, fn).Methods(method)
}

func (b *fakeBackend) count(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[method+" /api"+path]
}

func (b *fakeBackend) baseURL() string {
	return b.URL + "/api"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func bearer(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}
