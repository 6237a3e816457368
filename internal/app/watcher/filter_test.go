package watcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilter(t *testing.T, ignores []string) Filter {
	t.Helper()

	f, err := NewFilter("/work", []string{".go", ".mod"}, []string{"vendor", ".git", "node_modules"}, ignores)
	require.NoError(t, err)

	return f
}

func Test_Filter_Allow(t *testing.T) {
	tests := []struct {
		name    string
		ignores []string
		path    string
		want    bool
	}{
		{
			name: "allowed extension",
			path: "/work/cmd/main.go",
			want: true,
		},
		{
			name: "manifest extension",
			path: "/work/go.mod",
			want: true,
		},
		{
			name: "extension is case insensitive",
			path: "/work/cmd/MAIN.GO",
			want: true,
		},
		{
			name: "unlisted extension",
			path: "/work/README.md",
			want: false,
		},
		{
			name: "no extension",
			path: "/work/Makefile",
			want: false,
		},
		{
			name: "denied segment",
			path: "/work/vendor/dep/dep.go",
			want: false,
		},
		{
			name: "denied segment deep in the chain",
			path: "/work/services/api/node_modules/left-pad/index.go",
			want: false,
		},
		{
			name: "file named like a denied directory",
			path: "/work/internal/vendor.go",
			want: true,
		},
		{
			name: "outside the root",
			path: "/other/main.go",
			want: false,
		},
		{
			name: "sibling with the root as name prefix",
			path: "/work-backup/main.go",
			want: false,
		},
		{
			name: "the root itself",
			path: "/work",
			want: false,
		},
		{
			name:    "ignore glob on a subtree",
			ignores: []string{"gen/**"},
			path:    "/work/gen/models.go",
			want:    false,
		},
		{
			name:    "ignore glob leaves siblings alone",
			ignores: []string{"gen/**"},
			path:    "/work/general/models.go",
			want:    true,
		},
		{
			name:    "ignore glob on a name pattern",
			ignores: []string{"**/*_gen.go"},
			path:    "/work/internal/query/models_gen.go",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFilter(t, tt.ignores)

			assert.Equal(t, tt.want, f.Allow(tt.path))
		})
	}
}

func Test_Filter_AllowDir(t *testing.T) {
	tests := []struct {
		name    string
		ignores []string
		dir     string
		want    bool
	}{
		{
			name: "the root itself",
			dir:  "/work",
			want: true,
		},
		{
			name: "nested directory",
			dir:  "/work/services/api",
			want: true,
		},
		{
			name: "denied directory",
			dir:  "/work/vendor",
			want: false,
		},
		{
			name: "directory under a denied one",
			dir:  "/work/vendor/dep",
			want: false,
		},
		{
			name: "outside the root",
			dir:  "/elsewhere",
			want: false,
		},
		{
			name:    "glob ignored subtree",
			ignores: []string{"gen/**"},
			dir:     "/work/gen",
			want:    false,
		},
		{
			name:    "glob spares unrelated directories",
			ignores: []string{"gen/**"},
			dir:     "/work/internal",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFilter(t, tt.ignores)

			assert.Equal(t, tt.want, f.AllowDir(tt.dir))
		})
	}
}

func Test_NewFilter_RejectsBadGlob(t *testing.T) {
	_, err := NewFilter("/work", []string{".go"}, nil, []string{"[unterminated"})

	assert.Error(t, err)
}
