package watcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lens/internal/config"
)

func Test_NewFactory_BuildsWatcher(t *testing.T) {
	factory := NewFactory(config.DefaultConfig(), newWatcherTestLogger(t))

	w, err := factory(t.TempDir(), 0, func(Event) {})
	require.NoError(t, err)
	require.NotNil(t, w)

	w.Close()
}

func Test_NewFactory_RejectsBadIgnoreGlob(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Watch.Ignore = []string{"[unterminated"}

	factory := NewFactory(cfg, newWatcherTestLogger(t))

	_, err := factory(t.TempDir(), 0, func(Event) {})
	assert.Error(t, err)
}
