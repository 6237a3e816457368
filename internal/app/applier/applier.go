package applier

//go:generate mockgen -source=applier.go -destination=applier_mock.go -package=applier

import (
	"context"
	"os"
	"time"

	"lens/internal/app/model"
	"lens/internal/app/watcher"
	"lens/internal/app/worker"
	"lens/internal/config"
	"lens/internal/config/logger"
)

// Applier turns one accepted change event into a mutation of a cached
// representation. Callers serialize Apply per representation; the applier
// itself keeps no per-root state.
type Applier interface {
	Apply(ctx context.Context, rep *model.Representation, event watcher.Event) ApplyResult
}

// applier implements the Applier interface
type applier struct {
	cfg  *config.Config
	pool worker.Pool
	log  logger.Logger
}

// NewApplier creates a new mutation applier
func NewApplier(cfg *config.Config, pool worker.Pool, log logger.Logger) Applier {
	return &applier{
		cfg:  cfg,
		pool: pool,
		log:  log.WithComponent("APPLY"),
	}
}

// Apply routes an event to its mutation
func (a *applier) Apply(ctx context.Context, rep *model.Representation, event watcher.Event) ApplyResult {
	switch event.Op {
	case watcher.OpCreate:
		return a.applyCreate(ctx, rep, event.Path)
	case watcher.OpUpdate:
		return a.applyUpdate(ctx, rep, event.Path)
	case watcher.OpDelete:
		return a.applyDelete(rep, event.Path)
	case watcher.OpDeleteDir:
		return a.applyDeleteDir(rep, event.Path)
	default:
		return failed("unknown operation")
	}
}

// applyCreate indexes a new document. A create for an already-indexed path
// degrades to an update: editors that swap temp files produce exactly that
// sequence.
func (a *applier) applyCreate(ctx context.Context, rep *model.Representation, path string) ApplyResult {
	if _, ok := rep.Document(path); ok {
		return a.applyUpdate(ctx, rep, path)
	}

	if rep.ProjectCount() == 0 {
		a.log.Warn().Msgf("No projects under %s, skipping %s", rep.Root(), path)

		return skipped("no projects")
	}

	content, res, ok := a.readContent(ctx, path)
	if !ok {
		return res
	}

	rep.InsertDocument(path, content)
	a.log.Debug().Msgf("Indexed %s", path)

	return applied(1)
}

// applyUpdate replaces a document's content. An update for an unindexed
// path falls back to create, healing a missed create notification.
func (a *applier) applyUpdate(ctx context.Context, rep *model.Representation, path string) ApplyResult {
	if _, ok := rep.Document(path); !ok {
		return a.applyCreate(ctx, rep, path)
	}

	content, res, ok := a.readContent(ctx, path)
	if !ok {
		return res
	}

	rep.ReplaceContent(path, content)
	a.log.Debug().Msgf("Updated %s", path)

	return applied(1)
}

// applyDelete removes a document. Deleting an unindexed path is a no-op.
func (a *applier) applyDelete(rep *model.Representation, path string) ApplyResult {
	if !rep.RemoveDocument(path) {
		return skipped("document not indexed")
	}

	a.log.Debug().Msgf("Removed %s", path)

	return applied(1)
}

// applyDeleteDir removes every document under a deleted directory in one
// batch
func (a *applier) applyDeleteDir(rep *model.Representation, dir string) ApplyResult {
	removed := rep.RemoveDirectory(dir)
	if removed == 0 {
		return skipped("no documents under directory")
	}

	a.log.Debug().Msgf("Removed %d documents under %s", removed, dir)

	return applied(removed)
}

// readContent loads a file under the worker pool with the configured retry
// policy. A missing file fails fast: the event is stale and the follow-up
// delete is already on its way. Anything else gets the full retry budget,
// covering writers that still hold the file locked.
func (a *applier) readContent(ctx context.Context, path string) (string, ApplyResult, bool) {
	if err := a.pool.Acquire(ctx); err != nil {
		return "", failed(err.Error()), false
	}
	defer a.pool.Release()

	var lastErr error

	for attempt := 1; attempt <= a.cfg.Apply.Attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(a.cfg.Apply.Backoff):
			case <-ctx.Done():
				return "", failed(ctx.Err().Error()), false
			}
		}

		content, err := os.ReadFile(path)
		if err == nil {
			return string(content), ApplyResult{}, true
		}

		if os.IsNotExist(err) {
			a.log.Debug().Msgf("File %s vanished before read", path)

			return "", skipped("file no longer exists"), false
		}

		lastErr = err
	}

	a.log.Warn().Err(lastErr).Msgf("Read retries exhausted for %s", path)

	return "", skipped("read retries exhausted"), false
}
