package cache

//go:generate mockgen -source=cache.go -destination=cache_mock.go -package=cache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"lens/internal/app/applier"
	"lens/internal/app/builder"
	"lens/internal/app/bus"
	"lens/internal/app/errors"
	"lens/internal/app/model"
	"lens/internal/app/paths"
	"lens/internal/app/watcher"
	"lens/internal/config"
	"lens/internal/config/logger"
)

// EntryStatus describes one cached root for status reporting
type EntryStatus struct {
	Root      string    `json:"root"`
	State     string    `json:"state"`
	Projects  int       `json:"projects"`
	Documents int       `json:"documents"`
	CreatedAt time.Time `json:"created_at"`
}

// Cache is the registry of live workspace representations: one entry per
// normalized root, each owning a watcher and an apply loop. Concurrent
// callers for the same uncached root share a single build.
type Cache interface {
	GetOrCreate(ctx context.Context, root string) (*model.Representation, error)
	CurrentRepresentation(root string) (*model.Representation, error)
	Entries() []EntryStatus
	Dispose()
}

// cache implements the Cache interface
type cache struct {
	cfg     *config.Config
	builder builder.Builder
	factory watcher.Factory
	applier applier.Applier
	bus     bus.Bus
	log     logger.Logger

	group    singleflight.Group
	mu       sync.RWMutex
	entries  map[string]*entry
	disposed bool
}

// NewCache creates the workspace cache
func NewCache(cfg *config.Config, b builder.Builder, factory watcher.Factory, a applier.Applier, eventBus bus.Bus, log logger.Logger) Cache {
	return &cache{
		cfg:     cfg,
		builder: b,
		factory: factory,
		applier: a,
		bus:     eventBus,
		log:     log.WithComponent("CACHE"),
		entries: make(map[string]*entry),
	}
}

// GetOrCreate returns the representation for a root, building it on first
// request. The call blocks until the initial build completes; callers
// needing bounded latency cancel through ctx.
func (c *cache) GetOrCreate(ctx context.Context, root string) (*model.Representation, error) {
	key := paths.Key(root)

	c.mu.RLock()
	if c.disposed {
		c.mu.RUnlock()

		return nil, errors.ErrCacheDisposed
	}

	if e, ok := c.entries[key]; ok {
		rep := e.rep
		c.mu.RUnlock()

		return rep, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// The losing racers of a previous flight land here after the
		// winner inserted the entry.
		c.mu.RLock()
		e, ok := c.entries[key]
		c.mu.RUnlock()

		if ok {
			return e.rep, nil
		}

		return c.buildEntry(ctx, root, key)
	})
	if err != nil {
		return nil, err
	}

	return v.(*model.Representation), nil
}

// buildEntry runs the initial build for a root and registers the entry.
// Failure leaves nothing behind: the next request retries from scratch.
func (c *cache) buildEntry(ctx context.Context, root, key string) (*model.Representation, error) {
	e := newEntry(paths.Normalize(root), c.cfg.Watch.Queue, c.applier, c.bus, c.log)

	if err := e.fsm.Event(ctx, eventBeginBuild); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBuildFailed, err)
	}

	c.bus.Publish(bus.Message{Type: bus.EventBuildStarted, Data: bus.BuildStarted{Root: e.root}})

	started := time.Now()

	rep, err := c.builder.Build(ctx, root)
	if err != nil {
		return nil, c.failBuild(ctx, e, err)
	}

	e.rep = rep

	w, err := c.factory(e.root, c.windowFor(key), e.enqueue)
	if err != nil {
		return nil, c.failBuild(ctx, e, err)
	}

	if err := w.Start(); err != nil {
		return nil, c.failBuild(ctx, e, err)
	}

	e.watch = w

	if err := e.fsm.Event(ctx, eventBuildSucceeded); err != nil {
		e.teardown(ctx)

		return nil, fmt.Errorf("%w: %v", errors.ErrBuildFailed, err)
	}

	go e.drain()

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		e.teardown(ctx)

		return nil, errors.ErrCacheDisposed
	}
	c.entries[key] = e
	c.mu.Unlock()

	stats := rep.Stats()
	c.bus.Publish(bus.Message{
		Type: bus.EventBuildComplete,
		Data: bus.BuildComplete{
			Root:      e.root,
			Projects:  stats.Projects,
			Documents: stats.Documents,
			Duration:  time.Since(started),
		},
	})
	c.bus.Publish(bus.Message{Type: bus.EventWatchStarted, Data: bus.WatchStarted{Root: e.root}})

	c.log.Info().Msgf("Cached %s (%d projects, %d documents)", e.root, stats.Projects, stats.Documents)

	return rep, nil
}

// failBuild records a failed build and publishes the failure
func (c *cache) failBuild(ctx context.Context, e *entry, err error) error {
	if fsmErr := e.fsm.Event(ctx, eventBuildFailed); fsmErr != nil {
		c.log.Warn().Err(fsmErr).Msgf("Build failure transition failed for %s", e.root)
	}

	c.bus.Publish(bus.Message{
		Type:     bus.EventBuildFailed,
		Data:     bus.BuildFailed{Root: e.root, Error: err},
		Critical: true,
	})

	c.log.Error().Err(err).Msgf("Build failed for %s", e.root)

	return err
}

// CurrentRepresentation returns the live representation for a cached root.
// Query tools call this per query instead of holding a handle across calls.
func (c *cache) CurrentRepresentation(root string) (*model.Representation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.disposed {
		return nil, errors.ErrCacheDisposed
	}

	e, ok := c.entries[paths.Key(root)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrRootNotCached, root)
	}

	return e.rep, nil
}

// Entries returns a status snapshot of every cached root
func (c *cache) Entries() []EntryStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	statuses := make([]EntryStatus, 0, len(c.entries))

	for _, e := range c.entries {
		stats := e.rep.Stats()
		statuses = append(statuses, EntryStatus{
			Root:      e.root,
			State:     e.state(),
			Projects:  stats.Projects,
			Documents: stats.Documents,
			CreatedAt: e.createdAt,
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Root < statuses[j].Root
	})

	return statuses
}

// Dispose stops every watcher and apply loop and clears the registry. The
// cache refuses new work afterwards; in-flight mutations complete against
// representations nobody hands out anymore.
func (c *cache) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()

		return
	}

	c.disposed = true
	entries := c.entries
	c.entries = make(map[string]*entry)
	c.mu.Unlock()

	ctx := context.Background()

	for _, e := range entries {
		e.teardown(ctx)
		c.bus.Publish(bus.Message{Type: bus.EventRootDisposed, Data: bus.RootDisposed{Root: e.root}})
	}

	c.bus.Publish(bus.Message{Type: bus.EventCacheCleared, Critical: true})

	c.log.Info().Msgf("Disposed %d cached roots", len(entries))
}

// windowFor returns the per-workspace debounce override, zero when the
// root has no workspace section
func (c *cache) windowFor(key string) time.Duration {
	for path, ws := range c.cfg.Workspaces {
		if paths.Key(path) == key && ws != nil {
			return ws.Window
		}
	}

	return 0
}
