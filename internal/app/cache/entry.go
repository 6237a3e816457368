package cache

import (
	"context"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"lens/internal/app/applier"
	"lens/internal/app/bus"
	"lens/internal/app/model"
	"lens/internal/app/watcher"
	"lens/internal/config/logger"
)

// entry binds one root's representation to its watcher, its lifecycle
// state machine, and the queue that serializes mutations
type entry struct {
	root      string
	rep       *model.Representation
	watch     watcher.Watcher
	fsm       *fsm.FSM
	queue     chan watcher.Event
	done      chan struct{}
	createdAt time.Time

	applier applier.Applier
	bus     bus.Bus
	log     logger.Logger

	closeOnce sync.Once
}

func newEntry(root string, queueSize int, a applier.Applier, b bus.Bus, log logger.Logger) *entry {
	e := &entry{
		root:      root,
		queue:     make(chan watcher.Event, queueSize),
		done:      make(chan struct{}),
		createdAt: time.Now(),
		applier:   a,
		bus:       b,
		log:       log,
	}
	e.fsm = newEntryFSM(root, log)

	return e
}

// enqueue hands a watcher event to the apply loop. A full queue sheds the
// event rather than blocking the watcher; freshness is best-effort.
func (e *entry) enqueue(event watcher.Event) {
	select {
	case <-e.done:
		return
	default:
	}

	select {
	case e.queue <- event:
	default:
		e.log.Warn().Msgf("Apply queue full, dropping %s %s", event.Op, event.Path)
	}
}

// drain applies queued events one at a time, so readers of the
// representation only ever race with a single writer
func (e *entry) drain() {
	for {
		select {
		case <-e.done:
			return
		case event := <-e.queue:
			res := e.applier.Apply(context.Background(), e.rep, event)

			e.bus.Publish(bus.Message{
				Type: bus.EventChangeApplied,
				Data: bus.ChangeApplied{
					Root:   e.root,
					Path:   event.Path,
					Op:     event.Op.String(),
					Status: res.Status.String(),
					Docs:   res.Docs,
					Reason: res.Reason,
				},
			})
		}
	}
}

// teardown stops the watcher and the apply loop. Idempotent; an in-flight
// apply completes against a representation nobody hands out anymore.
func (e *entry) teardown(ctx context.Context) {
	e.closeOnce.Do(func() {
		if e.watch != nil {
			e.watch.Close()
		}

		close(e.done)

		if e.fsm.Is(StateActive) {
			if err := e.fsm.Event(ctx, eventTearDown); err != nil {
				e.log.Warn().Err(err).Msgf("Teardown transition failed for %s", e.root)
			}
		}

		e.bus.Publish(bus.Message{
			Type: bus.EventWatchStopped,
			Data: bus.WatchStopped{Root: e.root},
		})
	})
}

// state returns the current lifecycle state
func (e *entry) state() string {
	return e.fsm.Current()
}
