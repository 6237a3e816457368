package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lens/internal/app/errors"
)

// writeConfig drops a lens.yaml into the current working directory, which
// tests point at a fresh temp dir first.
func writeConfig(t *testing.T, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile("lens.yaml", []byte(content), 0o644))
}

func Test_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg.Workspaces)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
	assert.Equal(t, DebounceWindow, cfg.Watch.Window)
	assert.Equal(t, SweepRetention, cfg.Watch.Retention)
	assert.Equal(t, QueueSize, cfg.Watch.Queue)
	assert.Equal(t, ReadAttempts, cfg.Apply.Attempts)
	assert.Equal(t, 1, cfg.Version)
}

func Test_Load(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr error
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:  "missing file falls back to defaults",
			setup: func(t *testing.T) {},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DebounceWindow, cfg.Watch.Window)
				assert.Empty(t, cfg.Workspaces)
			},
		},
		{
			name: "well-formed file",
			setup: func(t *testing.T) {
				writeConfig(t, `version: 1
workspaces:
  /Work/Backend:
    warm: true
    window: 750ms
  /work/tools: {}
watch:
  window: 300ms
  retention: 10m
logging:
  level: debug
  format: json
`)
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 300*time.Millisecond, cfg.Watch.Window)
				assert.Equal(t, 10*time.Minute, cfg.Watch.Retention)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)

				require.Contains(t, cfg.Workspaces, "/Work/Backend")
				assert.True(t, cfg.Workspaces["/Work/Backend"].Warm)
				assert.Equal(t, 750*time.Millisecond, cfg.Workspaces["/Work/Backend"].Window)

				// A bare workspace inherits the global watch window.
				require.Contains(t, cfg.Workspaces, "/work/tools")
				assert.Equal(t, 300*time.Millisecond, cfg.Workspaces["/work/tools"].Window)
			},
		},
		{
			name: "document that is not a config mapping",
			setup: func(t *testing.T) {
				writeConfig(t, "version: \"invalid_version_type\"\nworkspaces: \"this should be a map not a string\"\n")
			},
			wantErr: errors.ErrFailedToParseConfig,
		},
		{
			name: "unreadable file",
			setup: func(t *testing.T) {
				if os.Geteuid() == 0 {
					t.Skip("file permissions do not bind root")
				}

				writeConfig(t, "watch: {}\n")
				require.NoError(t, os.Chmod("lens.yaml", 0o000))
			},
			wantErr: errors.ErrFailedToReadConfig,
		},
		{
			name: "file that fails validation",
			setup: func(t *testing.T) {
				writeConfig(t, "watch:\n  window: -1s\n")
			},
			wantErr: errors.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			tt.setup(t)

			cfg, err := Load()

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, cfg)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func Test_Load_PreservesWorkspaceCase(t *testing.T) {
	t.Chdir(t.TempDir())
	writeConfig(t, "workspaces:\n  /Work/Backend:\n    warm: true\n")

	cfg, err := Load()
	require.NoError(t, err)

	ws, ok := cfg.Workspaces["/Work/Backend"]
	require.True(t, ok, "workspace key must keep its original case")
	assert.True(t, ws.Warm)
	assert.Equal(t, cfg.Watch.Window, ws.Window)
}

func Test_parseWorkspaces(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		expect map[string]*Workspace
	}{
		{
			name: "workspaces with options",
			data: `workspaces:
  /Work/Backend:
    warm: true
    window: 1s
  /work/tools: {}
`,
			expect: map[string]*Workspace{
				"/Work/Backend": {Warm: true, Window: time.Second},
				"/work/tools":   {},
			},
		},
		{
			name:   "no workspaces section",
			data:   "logging:\n  level: debug\n",
			expect: map[string]*Workspace{},
		},
		{
			name:   "empty document",
			data:   "",
			expect: map[string]*Workspace{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseWorkspaces([]byte(tt.data))

			assert.NoError(t, err)
			assert.Equal(t, tt.expect, result)
		})
	}
}

func Test_ApplyDefaults(t *testing.T) {
	cfg := &Config{
		Workspaces: map[string]*Workspace{
			"/work/app": {},
		},
	}

	cfg.ApplyDefaults()

	assert.Equal(t, DebounceWindow, cfg.Watch.Window)
	assert.Equal(t, SweepRetention, cfg.Watch.Retention)
	assert.Equal(t, SweepInterval, cfg.Watch.Sweep)
	assert.Equal(t, QueueSize, cfg.Watch.Queue)
	assert.Equal(t, DefaultExtensions(), cfg.Watch.Extensions)
	assert.Equal(t, DefaultSkipDirs(), cfg.Watch.Skip)
	assert.Equal(t, ReadAttempts, cfg.Apply.Attempts)
	assert.Equal(t, ReadBackoff, cfg.Apply.Backoff)
	assert.Equal(t, MaxReadWorkers, cfg.Apply.Workers)
	assert.Equal(t, EventsBufferSize, cfg.API.Buffer)
	assert.Equal(t, DebounceWindow, cfg.Workspaces["/work/app"].Window)
}

func Test_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "zero window",
			mutate:  func(cfg *Config) { cfg.Watch.Window = 0 },
			wantErr: errors.ErrInvalidWatchWindow,
		},
		{
			name:    "retention below window",
			mutate:  func(cfg *Config) { cfg.Watch.Retention = cfg.Watch.Window / 2 },
			wantErr: errors.ErrInvalidWatchRetention,
		},
		{
			name:    "zero queue",
			mutate:  func(cfg *Config) { cfg.Watch.Queue = 0 },
			wantErr: errors.ErrInvalidWatchQueue,
		},
		{
			name:    "zero apply attempts",
			mutate:  func(cfg *Config) { cfg.Apply.Attempts = 0 },
			wantErr: errors.ErrInvalidApplyAttempts,
		},
		{
			name:    "negative apply backoff",
			mutate:  func(cfg *Config) { cfg.Apply.Backoff = -time.Millisecond },
			wantErr: errors.ErrInvalidApplyBackoff,
		},
		{
			name:    "zero apply workers",
			mutate:  func(cfg *Config) { cfg.Apply.Workers = 0 },
			wantErr: errors.ErrInvalidApplyWorkers,
		},
		{
			name:    "extension without dot",
			mutate:  func(cfg *Config) { cfg.Watch.Extensions = []string{"go"} },
			wantErr: errors.ErrInvalidExtension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
