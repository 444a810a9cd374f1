package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wedlink-admin/internal/logging"
)

// savedCookie is the persisted form of a cookie set by the backend.
type savedCookie struct {
	URL      string    `json:"url"`
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty"`
}

func (s savedCookie) key() string {
	return s.Domain + "|" + s.Path + "|" + s.Name
}

func (s savedCookie) expired(now time.Time) bool {
	return !s.Expires.IsZero() && !s.Expires.After(now)
}

// PersistentJar is a cookie jar whose contents survive restarts. It holds the
// backend's HTTP-only refresh cookie, which the console never reads itself.
type PersistentJar struct {
	inner *cookiejar.Jar
	repo  metadata.Repository
	log   logging.Logger

	mu      sync.Mutex
	entries map[string]savedCookie
}

// NewPersistentJar builds a jar and loads the cookies saved in repo.
func NewPersistentJar(ctx context.Context, repo metadata.Repository, log logging.Logger) (*PersistentJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Nop()
	}
	j := &PersistentJar{inner: inner, repo: repo, log: log, entries: map[string]savedCookie{}}

	raw, err := repo.Get(ctx, metadata.KeyCookies)
	if err != nil {
		return nil, fmt.Errorf("load cookies: %w", err)
	}
	if len(raw) == 0 {
		return j, nil
	}

	var saved []savedCookie
	if err := json.Unmarshal(raw, &saved); err != nil {
		log.Warn(ctx, "discarding unreadable cookie jar", "error", err)
		return j, nil
	}

	now := time.Now()
	for _, s := range saved {
		if s.expired(now) {
			continue
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			continue
		}
		j.entries[s.key()] = s
		j.inner.SetCookies(u, []*http.Cookie{s.cookie()})
	}
	return j, nil
}

func (s savedCookie) cookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.Name,
		Value:    s.Value,
		Path:     s.Path,
		Domain:   s.Domain,
		Expires:  s.Expires,
		Secure:   s.Secure,
		HttpOnly: s.HttpOnly,
	}
}

func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// SetCookies records the cookies and writes the jar back to the store.
func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)

	now := time.Now()

	j.mu.Lock()
	for _, c := range cookies {
		s := savedCookie{
			URL:      u.String(),
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		}
		switch {
		case c.MaxAge < 0:
			s.Expires = now.Add(-time.Second)
		case c.MaxAge > 0:
			s.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}

		if s.expired(now) || s.Value == "" {
			delete(j.entries, s.key())
			continue
		}
		j.entries[s.key()] = s
	}
	snapshot := make([]savedCookie, 0, len(j.entries))
	for _, s := range j.entries {
		snapshot = append(snapshot, s)
	}
	j.mu.Unlock()

	if err := j.persist(context.Background(), snapshot); err != nil {
		j.log.Warn(context.Background(), "failed to persist cookies", "error", err)
	}
}

func (j *PersistentJar) persist(ctx context.Context, cookies []savedCookie) error {
	raw, err := json.Marshal(cookies)
	if err != nil {
		return err
	}
	return j.repo.Set(ctx, metadata.KeyCookies, raw)
}

// Len returns the number of live persisted cookies.
func (j *PersistentJar) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}
