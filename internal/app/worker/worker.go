package worker

import (
	"context"

	"lens/internal/config"
)

// Pool bounds concurrent file reads so a burst of events cannot exhaust
// file descriptors
type Pool interface {
	Acquire(ctx context.Context) error
	Release()
}

// slots is a counting semaphore. Sends acquire, receives release.
type slots chan struct{}

// NewWorkerPool creates a pool sized by the configured apply concurrency
func NewWorkerPool(cfg *config.Config) Pool {
	return make(slots, cfg.Apply.Workers)
}

// Acquire takes a slot, blocking until one frees up or the context ends
func (s slots) Acquire(ctx context.Context) error {
	select {
	case s <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot to the pool
func (s slots) Release() {
	<-s
}
