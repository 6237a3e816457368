package builder

//go:generate mockgen -source=builder.go -destination=builder_mock.go -package=builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"lens/internal/app/errors"
	"lens/internal/app/model"
	"lens/internal/app/paths"
	"lens/internal/app/watcher"
	"lens/internal/config"
	"lens/internal/config/logger"
)

// Builder constructs the in-memory representation of one workspace root
type Builder interface {
	Build(ctx context.Context, root string) (*model.Representation, error)
}

// builder implements the Builder interface
type builder struct {
	cfg *config.Config
	log logger.Logger
}

// NewBuilder creates a new representation builder
func NewBuilder(cfg *config.Config, log logger.Logger) Builder {
	return &builder{
		cfg: cfg,
		log: log.WithComponent("BUILDER"),
	}
}

// Build discovers the projects under root and loads every matching document.
// The returned representation is complete; nothing hands it out while the
// initial load is still running.
func (b *builder) Build(ctx context.Context, root string) (*model.Representation, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrRootNotFound, root)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", errors.ErrRootNotDirectory, root)
	}

	rep := model.NewRepresentation(root)

	filter, err := watcher.NewFilter(rep.Root(), b.cfg.Watch.Extensions, b.cfg.Watch.Skip, b.cfg.Watch.Ignore)
	if err != nil {
		return nil, err
	}

	projects := b.discoverProjects(rep.Root(), filter)

	// Sorted insertion keeps the fallback project stable across builds.
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Dir < projects[j].Dir
	})

	for _, p := range projects {
		rep.AddProject(p)
	}

	if rep.ProjectCount() == 0 {
		b.log.Warn().Msgf("No module manifests under %s", root)
	}

	files, err := b.collectFiles(rep.Root(), filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBuildFailed, err)
	}

	if err := b.loadDocuments(ctx, rep, files); err != nil {
		return nil, err
	}

	stats := rep.Stats()
	b.log.Info().Msgf("Built %s: %d projects, %d documents", rep.Root(), stats.Projects, stats.Documents)

	return rep, nil
}

// collectFiles walks the tree and returns every path the filter allows.
// Unreadable subtrees are logged and skipped; only a walk failure at the
// root itself aborts the build.
func (b *builder) collectFiles(root string, filter watcher.Filter) ([]string, error) {
	var files []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if paths.Key(path) == paths.Key(root) {
				return err
			}

			b.log.Warn().Err(err).Msgf("Skipping unreadable path %s", path)

			return nil
		}

		if info.IsDir() {
			if !filter.AllowDir(path) {
				return filepath.SkipDir
			}

			return nil
		}

		if filter.Allow(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// loadDocuments reads the collected files with bounded parallelism and
// inserts them into the representation
func (b *builder) loadDocuments(ctx context.Context, rep *model.Representation, files []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Apply.Workers)

	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := os.ReadFile(file)
			if err != nil {
				// The file can vanish between the walk and the read;
				// the watcher picks up whatever happens next.
				b.log.Warn().Err(err).Msgf("Skipping unreadable file %s", file)

				return nil
			}

			rep.InsertDocument(file, string(content))

			return nil
		})
	}

	return g.Wait()
}
