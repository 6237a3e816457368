package watcher

import (
	"time"

	"lens/internal/config"
	"lens/internal/config/logger"
)

// Factory builds a ready-to-start Watcher for one workspace root. The
// window overrides the configured debounce window when positive.
type Factory func(root string, window time.Duration, handler Handler) (Watcher, error)

// NewFactory returns a Factory bound to the configured filter and debounce
// parameters
func NewFactory(cfg *config.Config, log logger.Logger) Factory {
	return func(root string, window time.Duration, handler Handler) (Watcher, error) {
		filter, err := NewFilter(root, cfg.Watch.Extensions, cfg.Watch.Skip, cfg.Watch.Ignore)
		if err != nil {
			return nil, err
		}

		if window <= 0 {
			window = cfg.Watch.Window
		}

		debouncer := NewDebouncer(window, cfg.Watch.Retention, cfg.Watch.Sweep)

		return NewWatcher(root, filter, debouncer, handler, log)
	}
}
