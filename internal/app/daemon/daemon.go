//go:generate mockgen -source=daemon.go -destination=daemon_mock.go -package=daemon
package daemon

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"lens/internal/app/bus"
	"lens/internal/app/cache"
	"lens/internal/app/preflight"
	"lens/internal/app/server"
	"lens/internal/app/worker"
	"lens/internal/config"
	"lens/internal/config/logger"
)

// Daemon defines the interface for the serve lifecycle
type Daemon interface {
	Run(ctx context.Context) error
}

type daemon struct {
	cfg    *config.Config
	checks preflight.Preflight
	cache  cache.Cache
	server server.Server
	pool   worker.Pool
	bus    bus.Bus
	log    logger.Logger
}

// NewDaemon creates a new daemon instance
func NewDaemon(
	cfg *config.Config,
	checks preflight.Preflight,
	c cache.Cache,
	srv server.Server,
	pool worker.Pool,
	eventBus bus.Bus,
	log logger.Logger,
) Daemon {
	return &daemon{
		cfg:    cfg,
		checks: checks,
		cache:  c,
		server: srv,
		pool:   pool,
		bus:    eventBus,
		log:    log.WithComponent("DAEMON"),
	}
}

// Run starts the socket server and blocks until a termination signal
// arrives or the context ends. Warm workspaces build in the background;
// a failed warm-up costs that root its head start and nothing else.
func (d *daemon) Run(ctx context.Context) error {
	if err := d.checks.Check(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := d.server.Start(ctx); err != nil {
		return err
	}

	var wg sync.WaitGroup

	d.warmWorkspaces(ctx, &wg)

	sigChan := make(chan os.Signal, 1)

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	d.wait(ctx, sigChan)
	cancel()
	d.shutdown(&wg)

	return nil
}

// warmWorkspaces schedules an initial build for every root marked warm
func (d *daemon) warmWorkspaces(ctx context.Context, wg *sync.WaitGroup) {
	for root, ws := range d.cfg.Workspaces {
		if !ws.Warm {
			continue
		}

		if err := d.pool.Acquire(ctx); err != nil {
			return
		}

		wg.Add(1)

		go func(root string) {
			defer wg.Done()
			defer d.pool.Release()

			if _, err := d.cache.GetOrCreate(ctx, root); err != nil {
				d.log.Warn().Err(err).Msgf("Warm-up failed for %s", root)
			}
		}(root)
	}
}

// wait blocks until a termination signal arrives or the context ends
func (d *daemon) wait(ctx context.Context, sigChan <-chan os.Signal) {
	select {
	case sig := <-sigChan:
		d.bus.Publish(bus.Message{
			Type:     bus.EventSignal,
			Data:     bus.Signal{Name: sig.String()},
			Critical: true,
		})
		d.log.Info().Msgf("Received signal %s, shutting down...", sig)
	case <-ctx.Done():
		d.log.Info().Msg("Context cancelled, shutting down...")
	}
}

// shutdown waits for in-flight warm-ups, stops the server, and disposes
// the cache, bounded by the shutdown timeout.
func (d *daemon) shutdown(wg *sync.WaitGroup) {
	done := make(chan struct{})

	go func() {
		wg.Wait()

		if err := d.server.Stop(); err != nil {
			d.log.Warn().Err(err).Msg("Server stop reported an error")
		}

		d.cache.Dispose()
		close(done)
	}()

	select {
	case <-done:
		d.log.Info().Msg("Daemon stopped")
	case <-time.After(config.ShutdownTimeout):
		d.log.Warn().Msgf("Shutdown timed out after %s", config.ShutdownTimeout)
	}
}
