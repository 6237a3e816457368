package watcher

import (
	"sync"
	"time"

	"lens/internal/app/paths"
)

// Debouncer suppresses repeated notifications for the same (path, operation)
// key inside a fixed window. One editor save commonly produces two or three
// raw notifications; only the first within the window is processed.
type Debouncer interface {
	Accept(path string, op Op) bool
	Len() int
	Stop()
}

// debounceKey identifies one logical change
type debounceKey struct {
	path string
	op   Op
}

// debouncer implements the Debouncer interface
type debouncer struct {
	window    time.Duration
	retention time.Duration
	seen      map[debounceKey]time.Time
	sweeper   *time.Ticker
	done      chan struct{}
	mu        sync.Mutex
	stopped   bool
}

// NewDebouncer creates a Debouncer with the given suppression window.
// A background sweep evicts keys older than retention to bound memory;
// sweeping is housekeeping only and does not affect suppression.
func NewDebouncer(window, retention, sweep time.Duration) Debouncer {
	d := &debouncer{
		window:    window,
		retention: retention,
		seen:      make(map[debounceKey]time.Time),
		sweeper:   time.NewTicker(sweep),
		done:      make(chan struct{}),
	}

	go d.sweepLoop()

	return d
}

// Accept reports whether an event should be processed now. A repeat of the
// same key within the window refreshes the stored timestamp and is
// suppressed; the first arrival after the window elapses is accepted again.
func (d *debouncer) Accept(path string, op Op) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false
	}

	key := debounceKey{path: paths.Key(path), op: op}
	now := time.Now()

	if last, ok := d.seen[key]; ok && now.Sub(last) < d.window {
		d.seen[key] = now
		return false
	}

	d.seen[key] = now

	return true
}

// Len returns the number of tracked keys
func (d *debouncer) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.seen)
}

// Stop halts the sweeper and drops all tracked keys
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.stopped = true
	d.sweeper.Stop()
	close(d.done)
	d.seen = make(map[debounceKey]time.Time)
}

// sweepLoop runs the periodic eviction until Stop
func (d *debouncer) sweepLoop() {
	for {
		select {
		case <-d.done:
			return
		case <-d.sweeper.C:
			d.sweep()
		}
	}
}

// sweep evicts keys whose last event is older than the retention window
func (d *debouncer) sweep() {
	cutoff := time.Now().Add(-d.retention)

	d.mu.Lock()
	defer d.mu.Unlock()

	for key, stamp := range d.seen {
		if stamp.Before(cutoff) {
			delete(d.seen, key)
		}
	}
}
