package paths

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Normalize returns the absolute, cleaned form of path.
// Relative paths are resolved against the current working directory.
func Normalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	return filepath.Clean(abs)
}

// CaseInsensitive reports whether path comparison folds case on this platform
func CaseInsensitive() bool {
	return runtime.GOOS == "darwin" || runtime.GOOS == "windows"
}

// Key returns the comparison form of a path: normalized, and folded to
// lower case on case-insensitive filesystems. Two paths identify the same
// file iff their keys are equal.
func Key(path string) string {
	n := Normalize(path)

	if CaseInsensitive() {
		return strings.ToLower(n)
	}

	return n
}

// HasPrefix reports whether path lies under dir, respecting path segment
// boundaries ("/a/bc" is not under "/a/b").
func HasPrefix(path, dir string) bool {
	p := Key(path)
	d := strings.TrimSuffix(Key(dir), string(filepath.Separator))

	if p == d {
		return true
	}

	return strings.HasPrefix(p, d+string(filepath.Separator))
}

// Slash converts path separators and removes leading ./ for glob matching
func Slash(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	return path
}
