package cache

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lens/internal/app/applier"
	"lens/internal/app/builder"
	"lens/internal/app/bus"
	"lens/internal/app/errors"
	"lens/internal/app/model"
	"lens/internal/app/watcher"
	"lens/internal/app/worker"
	"lens/internal/config"
	"lens/internal/config/logger"
)

func newCacheTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockLog := logger.NewMockLogger(ctrl)
	componentLog := logger.NewMockLogger(ctrl)
	mockLog.EXPECT().WithComponent(gomock.Any()).Return(componentLog).AnyTimes()
	componentLog.EXPECT().Debug().Return(nil).AnyTimes()
	componentLog.EXPECT().Info().Return(nil).AnyTimes()
	componentLog.EXPECT().Warn().Return(nil).AnyTimes()
	componentLog.EXPECT().Error().Return(nil).AnyTimes()

	return mockLog
}

// newMockedCache wires a cache around a MockBuilder with everything else real
func newMockedCache(t *testing.T, cfg *config.Config, eventBus bus.Bus) (Cache, *builder.MockBuilder) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockBuilder := builder.NewMockBuilder(ctrl)
	log := newCacheTestLogger(t)
	pool := worker.NewWorkerPool(cfg)

	c := NewCache(cfg, mockBuilder, watcher.NewFactory(cfg, log), applier.NewApplier(cfg, pool, log), eventBus, log)
	t.Cleanup(c.Dispose)

	return c, mockBuilder
}

func builtRepresentation(root string) *model.Representation {
	rep := model.NewRepresentation(root)
	rep.AddProject(&model.Project{Name: "example.com/app", Dir: root})

	return rep
}

func Test_Cache_GetOrCreate_SingleFlight(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	c, mockBuilder := newMockedCache(t, cfg, bus.NoOp())

	rep := builtRepresentation(root)
	mockBuilder.EXPECT().
		Build(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string) (*model.Representation, error) {
			time.Sleep(50 * time.Millisecond)

			return rep, nil
		}).
		Times(1)

	var wg sync.WaitGroup

	results := make([]*model.Representation, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			got, err := c.GetOrCreate(context.Background(), root)
			require.NoError(t, err)

			results[i] = got
		}(i)
	}

	wg.Wait()

	for _, got := range results {
		assert.Same(t, rep, got)
	}
}

func Test_Cache_GetOrCreate_CacheHit(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	c, mockBuilder := newMockedCache(t, cfg, bus.NoOp())

	rep := builtRepresentation(root)
	mockBuilder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(rep, nil).Times(1)

	first, err := c.GetOrCreate(context.Background(), root)
	require.NoError(t, err)

	second, err := c.GetOrCreate(context.Background(), root)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func Test_Cache_GetOrCreate_NormalizesRoot(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	c, mockBuilder := newMockedCache(t, cfg, bus.NoOp())

	rep := builtRepresentation(root)
	mockBuilder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(rep, nil).Times(1)

	_, err := c.GetOrCreate(context.Background(), root)
	require.NoError(t, err)

	// A cosmetic variant of the same path resolves to the same entry.
	_, err = c.GetOrCreate(context.Background(), filepath.Join(root, "sub", ".."))
	require.NoError(t, err)

	assert.Len(t, c.Entries(), 1)
}

func Test_Cache_GetOrCreate_FailureNotCached(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	c, mockBuilder := newMockedCache(t, cfg, bus.NoOp())

	rep := builtRepresentation(root)
	gomock.InOrder(
		mockBuilder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(nil, errors.ErrBuildFailed),
		mockBuilder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(rep, nil),
	)

	_, err := c.GetOrCreate(context.Background(), root)
	require.ErrorIs(t, err, errors.ErrBuildFailed)

	assert.Empty(t, c.Entries())

	got, err := c.GetOrCreate(context.Background(), root)
	require.NoError(t, err)
	assert.Same(t, rep, got)
}

func Test_Cache_CurrentRepresentation(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	c, mockBuilder := newMockedCache(t, cfg, bus.NoOp())

	rep := builtRepresentation(root)
	mockBuilder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(rep, nil).Times(1)

	_, err := c.CurrentRepresentation(root)
	assert.ErrorIs(t, err, errors.ErrRootNotCached)

	_, err = c.GetOrCreate(context.Background(), root)
	require.NoError(t, err)

	got, err := c.CurrentRepresentation(root)
	require.NoError(t, err)
	assert.Same(t, rep, got)
}

func Test_Cache_Entries(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	c, mockBuilder := newMockedCache(t, cfg, bus.NoOp())

	rep := builtRepresentation(root)
	rep.InsertDocument(filepath.Join(root, "main.go"), "package main\n")
	mockBuilder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(rep, nil).Times(1)

	_, err := c.GetOrCreate(context.Background(), root)
	require.NoError(t, err)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, StateActive, entries[0].State)
	assert.Equal(t, 1, entries[0].Projects)
	assert.Equal(t, 1, entries[0].Documents)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func Test_Cache_Dispose(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	c, mockBuilder := newMockedCache(t, cfg, bus.NoOp())

	rep := builtRepresentation(root)
	mockBuilder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(rep, nil).Times(1)

	_, err := c.GetOrCreate(context.Background(), root)
	require.NoError(t, err)

	c.Dispose()

	assert.Empty(t, c.Entries())

	_, err = c.GetOrCreate(context.Background(), root)
	assert.ErrorIs(t, err, errors.ErrCacheDisposed)

	_, err = c.CurrentRepresentation(root)
	assert.ErrorIs(t, err, errors.ErrCacheDisposed)

	c.Dispose()
}

func Test_Cache_PublishesBuildEvents(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()

	eventBus := bus.New(cfg, nil)
	t.Cleanup(eventBus.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := eventBus.Subscribe(ctx)

	c, mockBuilder := newMockedCache(t, cfg, eventBus)

	rep := builtRepresentation(root)
	mockBuilder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(rep, nil).Times(1)

	_, err := c.GetOrCreate(context.Background(), root)
	require.NoError(t, err)

	seen := make(map[bus.MessageType]bool)
	timeout := time.After(time.Second)

	for len(seen) < 3 {
		select {
		case msg := <-events:
			switch msg.Type {
			case bus.EventBuildStarted, bus.EventBuildComplete, bus.EventWatchStarted:
				seen[msg.Type] = true
			}
		case <-timeout:
			t.Fatalf("Missing build events, saw %v", seen)
		}
	}
}

func Test_Cache_AppliesFilesystemChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n\ngo 1.24\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Watch.Window = 50 * time.Millisecond

	log := newCacheTestLogger(t)
	pool := worker.NewWorkerPool(cfg)

	c := NewCache(
		cfg,
		builder.NewBuilder(cfg, log),
		watcher.NewFactory(cfg, log),
		applier.NewApplier(cfg, pool, log),
		bus.NoOp(),
		log,
	)
	t.Cleanup(c.Dispose)

	rep, err := c.GetOrCreate(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, 2, rep.DocumentCount())

	// Create
	utilPath := filepath.Join(root, "util.go")
	require.NoError(t, os.WriteFile(utilPath, []byte("package main // util\n"), 0o644))

	require.Eventually(t, func() bool {
		_, ok := rep.Document(utilPath)

		return ok
	}, 3*time.Second, 20*time.Millisecond, "created file should be indexed")

	// Update
	mainPath := filepath.Join(root, "main.go")
	require.NoError(t, os.WriteFile(mainPath, []byte("package main // v2\n"), 0o644))

	require.Eventually(t, func() bool {
		doc, ok := rep.Document(mainPath)

		return ok && doc.Content == "package main // v2\n"
	}, 3*time.Second, 20*time.Millisecond, "updated content should be applied")

	// Delete
	require.NoError(t, os.Remove(utilPath))

	require.Eventually(t, func() bool {
		_, ok := rep.Document(utilPath)

		return !ok
	}, 3*time.Second, 20*time.Millisecond, "deleted file should be dropped")

	// Directory create then delete
	pkgDir := filepath.Join(root, "pkg")
	pkgPath := filepath.Join(pkgDir, "pkg.go")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(pkgPath, []byte("package pkg\n"), 0o644))

	require.Eventually(t, func() bool {
		_, ok := rep.Document(pkgPath)

		return ok
	}, 3*time.Second, 20*time.Millisecond, "file in new directory should be indexed")

	require.NoError(t, os.RemoveAll(pkgDir))

	require.Eventually(t, func() bool {
		_, ok := rep.Document(pkgPath)

		return !ok
	}, 3*time.Second, 20*time.Millisecond, "documents under deleted directory should be dropped")
}

func Test_Cache_CollapsesRapidWrites(t *testing.T) {
	root := t.TempDir()
	mainPath := filepath.Join(root, "main.go")
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n\ngo 1.24\n"), 0o644))
	require.NoError(t, os.WriteFile(mainPath, []byte("package main\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Watch.Window = 500 * time.Millisecond

	eventBus := bus.New(cfg, nil)
	t.Cleanup(eventBus.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages := eventBus.Subscribe(ctx)

	log := newCacheTestLogger(t)
	pool := worker.NewWorkerPool(cfg)

	c := NewCache(
		cfg,
		builder.NewBuilder(cfg, log),
		watcher.NewFactory(cfg, log),
		applier.NewApplier(cfg, pool, log),
		eventBus,
		log,
	)
	t.Cleanup(c.Dispose)

	rep, err := c.GetOrCreate(context.Background(), root)
	require.NoError(t, err)

	// Two saves in quick succession, well inside one debounce window.
	require.NoError(t, os.WriteFile(mainPath, []byte("package main // draft\n"), 0o644))
	require.NoError(t, os.WriteFile(mainPath, []byte("package main // final\n"), 0o644))

	require.Eventually(t, func() bool {
		doc, ok := rep.Document(mainPath)

		return ok && doc.Content == "package main // final\n"
	}, 3*time.Second, 20*time.Millisecond, "latest content should win")

	// Keep listening past the window: the burst must amount to one update.
	updates := 0
	settle := time.After(2 * cfg.Watch.Window)

	for {
		select {
		case msg := <-messages:
			if msg.Type != bus.EventChangeApplied {
				continue
			}

			data, ok := msg.Data.(bus.ChangeApplied)
			if ok && data.Op == watcher.OpUpdate.String() {
				assert.Equal(t, applier.StatusApplied.String(), data.Status)

				updates++
			}
		case <-settle:
			assert.Equal(t, 1, updates, "saves inside one window should collapse to a single update")

			return
		}
	}
}

func Test_Cache_AppliesRename(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n\ngo 1.24\n"), 0o644))

	oldPath := filepath.Join(root, "alpha.go")
	require.NoError(t, os.WriteFile(oldPath, []byte("package main // z\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Watch.Window = 50 * time.Millisecond

	log := newCacheTestLogger(t)
	pool := worker.NewWorkerPool(cfg)

	c := NewCache(
		cfg,
		builder.NewBuilder(cfg, log),
		watcher.NewFactory(cfg, log),
		applier.NewApplier(cfg, pool, log),
		bus.NoOp(),
		log,
	)
	t.Cleanup(c.Dispose)

	rep, err := c.GetOrCreate(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, 2, rep.DocumentCount())

	newPath := filepath.Join(root, "beta.go")
	require.NoError(t, os.Rename(oldPath, newPath))

	require.Eventually(t, func() bool {
		_, oldOK := rep.Document(oldPath)
		doc, newOK := rep.Document(newPath)

		return !oldOK && newOK && doc.Content == "package main // z\n"
	}, 3*time.Second, 20*time.Millisecond, "rename should move the document")
}
