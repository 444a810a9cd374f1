package services

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/debounce"
	"github.com/dmitrijs2005/wedlink-admin/internal/logging"
	"github.com/jonboulle/clockwork"
)

// NameCheck is the applied result of the event name existence check.
// Pending is set by Result while a newer check has not been applied yet.
type NameCheck struct {
	Name    string
	Exists  bool
	Checked bool
	Pending bool
}

type observation struct {
	gen  uint64
	name string
}

// NameChecker runs the debounced "does this event name exist" check while
// the name is being typed. Only the check for the latest observed value is
// ever applied.
type NameChecker struct {
	ctx    context.Context
	check  func(ctx context.Context, name string) (bool, error)
	minLen int
	task   *debounce.Task[observation]
	log    logging.Logger

	mu      sync.Mutex
	gen     uint64
	result  NameCheck
	pending bool
	done    chan struct{}
}

type NameCheckerOptions struct {
	Clock     clockwork.Clock
	Delay     time.Duration
	MinLength int
	Logger    logging.Logger
}

func NewNameChecker(ctx context.Context, events EventService, opts NameCheckerOptions) *NameChecker {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	c := &NameChecker{
		ctx:    ctx,
		check:  events.CheckName,
		minLen: opts.MinLength,
		log:    opts.Logger,
	}
	c.task = debounce.New(opts.Clock, opts.Delay, c.run)
	return c
}

// Observe records a new value of the name field. Short names cancel the
// pending check and count as not existing; others are checked after the delay.
func (c *NameChecker) Observe(raw string) {
	name := strings.TrimSpace(raw)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++

	if utf8.RuneCountInString(name) < c.minLen {
		c.task.Cancel()
		c.result = NameCheck{Name: name}
		c.finishLocked()
		return
	}

	if !c.pending {
		c.pending = true
		c.done = make(chan struct{})
	}
	if !c.task.Schedule(observation{gen: c.gen, name: name}) {
		c.finishLocked()
	}
}

func (c *NameChecker) run(o observation) {
	exists, err := c.check(c.ctx, o.name)
	if err != nil {
		c.log.Warn(c.ctx, "event name check failed", "name", o.name, "error", err)
		exists = false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if o.gen != c.gen {
		return
	}
	c.result = NameCheck{Name: o.name, Exists: exists, Checked: true}
	c.finishLocked()
}

func (c *NameChecker) finishLocked() {
	if c.pending {
		c.pending = false
		close(c.done)
	}
}

// Result returns the currently applied result without waiting.
func (c *NameChecker) Result() NameCheck {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.result
	r.Pending = c.pending
	return r
}

// Settle waits until no check is pending and returns the applied result.
func (c *NameChecker) Settle(ctx context.Context) (NameCheck, error) {
	for {
		c.mu.Lock()
		if !c.pending {
			r := c.result
			c.mu.Unlock()
			return r, nil
		}
		ch := c.done
		c.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return NameCheck{}, ctx.Err()
		}
	}
}

// Close drops any pending check. The checker cannot be used afterwards.
func (c *NameChecker) Close() {
	c.task.Stop()

	c.mu.Lock()
	c.gen++
	c.finishLocked()
	c.mu.Unlock()
}
