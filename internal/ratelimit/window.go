// Package ratelimit implements fixed-window request counting keyed by
// client identity, with an in-memory and a Redis-backed variant.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// Limiter is a fixed-window counter keyed by opaque client identity.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

type record struct {
	count   int
	resetAt time.Time
}

// Window is an in-process fixed-window limiter. Expired entries are
// swept on every call so the map cannot grow without bound.
type Window struct {
	window time.Duration
	max    int
	now    func() time.Time

	mu      sync.Mutex
	records map[string]*record
}

func NewWindow(window time.Duration, max int) *Window {
	return &Window{
		window:  window,
		max:     max,
		now:     time.Now,
		records: make(map[string]*record),
	}
}

// NewWindowWithClock is test-only for deterministic windows.
func NewWindowWithClock(window time.Duration, max int, now func() time.Time) *Window {
	w := NewWindow(window, max)
	w.now = now
	return w
}

func (w *Window) Allow(_ context.Context, key string) (Decision, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.sweepLocked(now)

	rec, ok := w.records[key]
	if !ok || now.After(rec.resetAt) {
		w.records[key] = &record{count: 1, resetAt: now.Add(w.window)}
		return Decision{Allowed: true, Remaining: w.max - 1, ResetIn: w.window}, nil
	}

	if rec.count >= w.max {
		return Decision{Allowed: false, Remaining: 0, ResetIn: rec.resetAt.Sub(now)}, nil
	}

	rec.count++
	return Decision{Allowed: true, Remaining: w.max - rec.count, ResetIn: rec.resetAt.Sub(now)}, nil
}

func (w *Window) sweepLocked(now time.Time) {
	for key, rec := range w.records {
		if now.After(rec.resetAt) {
			delete(w.records, key)
		}
	}
}
