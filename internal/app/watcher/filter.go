package watcher

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"lens/internal/app/paths"
)

// Filter decides whether a path under a root takes part in watching and
// indexing. It runs before the debouncer: rejected events never touch
// debounce state or the applier.
type Filter interface {
	Allow(path string) bool
	AllowDir(dir string) bool
}

// filter implements the Filter interface
type filter struct {
	root       string
	extensions map[string]struct{}
	skip       map[string]struct{}
	ignores    []glob.Glob
}

// NewFilter creates a Filter for one workspace root from the extension
// allow-list, the directory segment deny-list, and extra ignore globs.
func NewFilter(root string, extensions, skip, ignores []string) (Filter, error) {
	f := &filter{
		root:       paths.Normalize(root),
		extensions: make(map[string]struct{}, len(extensions)),
		skip:       make(map[string]struct{}, len(skip)),
		ignores:    make([]glob.Glob, 0, len(ignores)),
	}

	for _, ext := range extensions {
		f.extensions[strings.ToLower(ext)] = struct{}{}
	}

	for _, name := range skip {
		f.skip[name] = struct{}{}
	}

	for _, p := range ignores {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, err
		}

		f.ignores = append(f.ignores, g)
	}

	return f, nil
}

// Allow reports whether a file path should enter the pipeline: it must lie
// under the root, carry an allow-listed extension, have no denied directory
// segment anywhere in its chain, and match no ignore glob.
func (f *filter) Allow(path string) bool {
	rel, ok := f.relative(path)
	if !ok {
		return false
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, allowed := f.extensions[ext]; !allowed {
		return false
	}

	segments := splitSegments(rel)
	if len(segments) == 0 {
		return false
	}

	for _, segment := range segments[:len(segments)-1] {
		if _, denied := f.skip[segment]; denied {
			return false
		}
	}

	for _, ignore := range f.ignores {
		if ignore.Match(rel) {
			return false
		}
	}

	return true
}

// AllowDir reports whether a directory should be watched or walked. The
// directory's own name counts as part of its chain.
func (f *filter) AllowDir(dir string) bool {
	rel, ok := f.relative(dir)
	if !ok {
		return false
	}

	if rel == "." {
		return true
	}

	for _, segment := range splitSegments(rel) {
		if _, denied := f.skip[segment]; denied {
			return false
		}
	}

	probe := rel + "/_probe"
	for _, ignore := range f.ignores {
		if ignore.Match(probe) {
			return false
		}
	}

	return true
}

// relative resolves path against the root, in slash form for glob matching
func (f *filter) relative(path string) (string, bool) {
	rel, err := filepath.Rel(f.root, paths.Normalize(path))
	if err != nil {
		return "", false
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return paths.Slash(rel), true
}

// splitSegments splits a slash-form relative path into its segments
func splitSegments(rel string) []string {
	if rel == "." {
		return nil
	}

	return strings.Split(rel, "/")
}
