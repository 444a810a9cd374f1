// Package debounce runs a function once input has been quiet for a fixed
// delay. Each Schedule cancels the pending run and starts the delay over.
package debounce

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type Task[T any] struct {
	clock clockwork.Clock
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   clockwork.Timer
	stopped bool
}

func New[T any](clock clockwork.Clock, delay time.Duration, fn func(T)) *Task[T] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Task[T]{clock: clock, delay: delay, fn: fn}
}

// Schedule replaces any pending run with fn(v) after the delay. It reports
// false once the task has been stopped.
func (t *Task[T]) Schedule(v T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return false
	}
	t.cancelLocked()

	var timer clockwork.Timer
	timer = t.clock.AfterFunc(t.delay, func() {
		t.mu.Lock()
		if t.timer != timer {
			t.mu.Unlock()
			return
		}
		t.timer = nil
		t.mu.Unlock()
		t.fn(v)
	})
	t.timer = timer
	return true
}

// Cancel drops the pending run, if any.
func (t *Task[T]) Cancel() {
	t.mu.Lock()
	t.cancelLocked()
	t.mu.Unlock()
}

// Stop cancels the pending run and refuses further schedules.
func (t *Task[T]) Stop() {
	t.mu.Lock()
	t.cancelLocked()
	t.stopped = true
	t.mu.Unlock()
}

func (t *Task[T]) cancelLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
