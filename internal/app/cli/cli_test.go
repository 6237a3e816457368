package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lens/internal/app/cache"
	"lens/internal/app/daemon"
	"lens/internal/app/generator"
	"lens/internal/app/query"
	"lens/internal/app/server"
	"lens/internal/app/stats"
	"lens/internal/config"
	"lens/internal/config/logger"
)

func newCLITestLogger(ctrl *gomock.Controller) (logger.Logger, *logger.MockLogger) {
	mockLog := logger.NewMockLogger(ctrl)
	componentLog := logger.NewMockLogger(ctrl)
	mockLog.EXPECT().WithComponent(gomock.Any()).Return(componentLog).AnyTimes()
	componentLog.EXPECT().Debug().Return(nil).AnyTimes()

	return mockLog, componentLog
}

type cliMocks struct {
	daemon *daemon.MockDaemon
	client *server.MockClient
	gen    *generator.MockGenerator
	tui    *MockTUI
}

// newTestCLI builds a cli over fresh mocks. The controller verifies its
// expectations through t.Cleanup.
func newTestCLI(t *testing.T) (*cli, cliMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mocks := cliMocks{
		daemon: daemon.NewMockDaemon(ctrl),
		client: server.NewMockClient(ctrl),
		gen:    generator.NewMockGenerator(ctrl),
		tui:    NewMockTUI(ctrl),
	}

	mockLog, _ := newCLITestLogger(ctrl)
	c := NewCLI(config.DefaultConfig(), mocks.daemon, mocks.client, mocks.gen, mocks.tui, mockLog)

	instance, ok := c.(*cli)
	require.True(t, ok)

	return instance, mocks
}

// captureStdout runs fn with os.Stdout redirected into a buffer and returns
// whatever it printed. The handlers write with fmt.Print, so tests intercept
// the process stdout instead of injecting a writer.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	defer func() { os.Stdout = orig }()

	fnErr := fn()

	require.NoError(t, w.Close())

	var buf bytes.Buffer

	_, err = io.Copy(&buf, r)
	require.NoError(t, err)

	return buf.String(), fnErr
}

func Test_NewCLI(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := config.DefaultConfig()
	mockDaemon := daemon.NewMockDaemon(ctrl)
	mockClient := server.NewMockClient(ctrl)
	mockGen := generator.NewMockGenerator(ctrl)
	mockTUI := NewMockTUI(ctrl)
	mockLog, componentLog := newCLITestLogger(ctrl)

	c := NewCLI(cfg, mockDaemon, mockClient, mockGen, mockTUI, mockLog)
	require.NotNil(t, c)

	instance, ok := c.(*cli)
	require.True(t, ok)

	assert.Equal(t, cfg, instance.cfg)
	assert.Equal(t, mockDaemon, instance.daemon)
	assert.Equal(t, mockClient, instance.client)
	assert.Equal(t, mockGen, instance.gen)
	assert.Equal(t, mockTUI, instance.tui)
	assert.Equal(t, componentLog, instance.log)
}

func Test_Run(t *testing.T) {
	c, mocks := newTestCLI(t)

	tests := []struct {
		name    string
		opts    *Options
		expect  func()
		wantErr bool
	}{
		{
			name: "Serve runs the daemon",
			opts: &Options{Type: CommandServe},
			expect: func() {
				mocks.daemon.EXPECT().Run(gomock.Any()).Return(nil)
			},
		},
		{
			name: "Serve surfaces daemon failure",
			opts: &Options{Type: CommandServe},
			expect: func() {
				mocks.daemon.EXPECT().Run(gomock.Any()).Return(errors.New("socket in use"))
			},
			wantErr: true,
		},
		{
			name: "Status queries the daemon",
			opts: &Options{Type: CommandStatus, Root: "."},
			expect: func() {
				mocks.client.EXPECT().Status().Return(&server.StatusReply{Socket: "/tmp/lens.sock"}, nil)
			},
		},
		{
			name: "Status surfaces client failure",
			opts: &Options{Type: CommandStatus, Root: "."},
			expect: func() {
				mocks.client.EXPECT().Status().Return(nil, errors.New("daemon not running"))
			},
			wantErr: true,
		},
		{
			name: "Symbol queries the normalized root",
			opts: &Options{Type: CommandSymbol, Root: "/work/app", Name: "Parse"},
			expect: func() {
				mocks.client.EXPECT().Symbol("/work/app", "Parse").Return([]query.Declaration{}, nil)
			},
		},
		{
			name: "Doc queries the normalized root",
			opts: &Options{Type: CommandDoc, Root: "/work/app", Name: "Config"},
			expect: func() {
				mocks.client.EXPECT().Doc("/work/app", "Config").Return([]query.Declaration{}, nil)
			},
		},
		{
			name: "Refs queries the normalized root",
			opts: &Options{Type: CommandRefs, Root: "/work/app", Name: "Logger"},
			expect: func() {
				mocks.client.EXPECT().References("/work/app", "Logger").Return([]query.Reference{}, nil)
			},
		},
		{
			name: "Events opens the TUI by default",
			opts: &Options{Type: CommandEvents, Roots: []string{"/work/app"}},
			expect: func() {
				mocks.tui.EXPECT().Events(gomock.Any(), []string{"/work/app"}).Return(nil)
			},
		},
		{
			name: "Init generates a config",
			opts: &Options{Type: CommandInit, Root: "/work/app"},
			expect: func() {
				mocks.gen.EXPECT().Generate(generator.Options{Root: "/work/app", Warm: true}, false, false).Return(nil)
			},
		},
		{
			name:   "Version prints and succeeds",
			opts:   &Options{Type: CommandVersion},
			expect: func() {},
		},
		{
			name: "Help opens the TUI",
			opts: &Options{Type: CommandHelp},
			expect: func() {
				mocks.tui.EXPECT().Help().Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect()

			_, err := captureStdout(t, func() error { return c.run(tt.opts) })

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func Test_Execute(t *testing.T) {
	c, _ := newTestCLI(t)

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"lens", "version"}

	var exitCode int

	out, err := captureStdout(t, func() error {
		var execErr error
		exitCode, execErr = c.Execute()

		return execErr
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, out, config.Version)
}

func Test_Execute_UnknownCommand(t *testing.T) {
	c, _ := newTestCLI(t)

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"lens", "unknown"}

	exitCode, err := c.Execute()

	assert.Equal(t, 1, exitCode)
	assert.Error(t, err)
}

func Test_handleStatus_Output(t *testing.T) {
	c, mocks := newTestCLI(t)

	reply := &server.StatusReply{
		Version: config.Version,
		Socket:  "/tmp/lens.sock",
		Process: stats.Snapshot{
			PID:        4242,
			CPUPercent: 1.5,
			MemoryRSS:  32 << 20,
			Goroutines: 12,
			Uptime:     90 * time.Second,
		},
		Roots: []cache.EntryStatus{
			{Root: "/work/app", State: "ready", Projects: 2, Documents: 40},
		},
	}
	mocks.client.EXPECT().Status().Return(reply, nil)

	out, err := captureStdout(t, func() error {
		return c.handleStatus(&Options{Type: CommandStatus})
	})

	assert.NoError(t, err)
	assert.Contains(t, out, "/tmp/lens.sock")
	assert.Contains(t, out, "4242")
	assert.Contains(t, out, "1m30s")
	assert.Contains(t, out, "/work/app")
	assert.Contains(t, out, "ready")
}

func Test_handleStatus_JSON(t *testing.T) {
	c, mocks := newTestCLI(t)

	mocks.client.EXPECT().Status().Return(&server.StatusReply{Socket: "/tmp/lens.sock"}, nil)

	out, err := captureStdout(t, func() error {
		return c.handleStatus(&Options{Type: CommandStatus, JSON: true})
	})

	assert.NoError(t, err)
	assert.Contains(t, out, `"socket": "/tmp/lens.sock"`)
}

func Test_handleSymbol_Output(t *testing.T) {
	c, mocks := newTestCLI(t)

	decls := []query.Declaration{
		{
			Name:      "Parse",
			Kind:      "func",
			Signature: "func Parse(args []string) (*Options, error)",
			File:      "commands.go",
			Line:      41,
			Project:   "lens",
		},
	}
	mocks.client.EXPECT().Symbol("/work/app", "Parse").Return(decls, nil)

	out, err := captureStdout(t, func() error {
		return c.handleSymbol(&Options{Type: CommandSymbol, Root: "/work/app", Name: "Parse"})
	})

	assert.NoError(t, err)
	assert.Contains(t, out, "Parse")
	assert.Contains(t, out, "commands.go:41")
	assert.Contains(t, out, "func Parse(args []string) (*Options, error)")
	assert.Contains(t, out, "1 declarations")
}

func Test_handleDoc_Output(t *testing.T) {
	c, mocks := newTestCLI(t)

	decls := []query.Declaration{
		{
			Name:      "Config",
			Kind:      "type",
			Signature: "type Config struct",
			File:      "config.go",
			Line:      12,
			Doc:       "Config holds the daemon settings.\nLoaded from lens.yaml.",
		},
	}
	mocks.client.EXPECT().Doc("/work/app", "Config").Return(decls, nil)

	out, err := captureStdout(t, func() error {
		return c.handleDoc(&Options{Type: CommandDoc, Root: "/work/app", Name: "Config"})
	})

	assert.NoError(t, err)
	assert.Contains(t, out, "Config holds the daemon settings.")
	assert.Contains(t, out, "Loaded from lens.yaml.")
}

func Test_handleRefs_Output(t *testing.T) {
	c, mocks := newTestCLI(t)

	refs := []query.Reference{
		{File: "runner.go", Line: 10, Column: 3, Excerpt: "\tresult := Parse(args)"},
	}
	mocks.client.EXPECT().References("/work/app", "Parse").Return(refs, nil)

	out, err := captureStdout(t, func() error {
		return c.handleRefs(&Options{Type: CommandRefs, Root: "/work/app", Name: "Parse"})
	})

	assert.NoError(t, err)
	assert.Contains(t, out, "runner.go:10:3")
	assert.Contains(t, out, "result := Parse(args)")
	assert.Contains(t, out, "1 references")
}

func Test_streamEvents_PlainLines(t *testing.T) {
	c, mocks := newTestCLI(t)

	mocks.client.EXPECT().Events(gomock.Any(), []string{}, gomock.Any()).DoAndReturn(
		func(ctx context.Context, roots []string, handle func(server.EventFrame)) error {
			handle(server.EventFrame{
				Type:      "build_complete",
				Timestamp: time.Now(),
				Root:      "/work/app",
				Projects:  2,
				Documents: 10,
				Duration:  "1.2s",
			})

			return nil
		})

	out, err := captureStdout(t, func() error {
		return c.handleEvents(&Options{Type: CommandEvents, NoUI: true})
	})

	assert.NoError(t, err)
	assert.Contains(t, out, "build_complete")
	assert.Contains(t, out, "/work/app ready (2 projects, 10 documents in 1.2s)")
}

func Test_streamEvents_JSON(t *testing.T) {
	c, mocks := newTestCLI(t)

	mocks.client.EXPECT().Events(gomock.Any(), []string{}, gomock.Any()).DoAndReturn(
		func(ctx context.Context, roots []string, handle func(server.EventFrame)) error {
			handle(server.EventFrame{Type: "watch_started", Timestamp: time.Now(), Root: "/work/app"})

			return nil
		})

	out, err := captureStdout(t, func() error {
		return c.handleEvents(&Options{Type: CommandEvents, JSON: true})
	})

	assert.NoError(t, err)
	assert.Contains(t, out, `"type":"watch_started"`)
	assert.Contains(t, out, `"root":"/work/app"`)
}

func Test_streamEvents_Failure(t *testing.T) {
	c, mocks := newTestCLI(t)

	mocks.client.EXPECT().Events(gomock.Any(), []string{}, gomock.Any()).Return(errors.New("daemon not running"))

	err := c.handleEvents(&Options{Type: CommandEvents, NoUI: true})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "daemon not running")
}

func Test_handleInit(t *testing.T) {
	c, mocks := newTestCLI(t)

	tests := []struct {
		name    string
		opts    *Options
		expect  func()
		wantErr bool
		wantOut string
	}{
		{
			name: "Writes config and prints next step",
			opts: &Options{Type: CommandInit, Root: "/work/app"},
			expect: func() {
				mocks.gen.EXPECT().Generate(generator.Options{Root: "/work/app", Warm: true}, false, false).Return(nil)
			},
			wantOut: "Wrote lens.yaml",
		},
		{
			name: "Dry run stays quiet",
			opts: &Options{Type: CommandInit, Root: "/work/app", DryRun: true},
			expect: func() {
				mocks.gen.EXPECT().Generate(generator.Options{Root: "/work/app", Warm: true}, false, true).Return(nil)
			},
			wantOut: "",
		},
		{
			name: "Force is forwarded",
			opts: &Options{Type: CommandInit, Root: "/work/app", Force: true},
			expect: func() {
				mocks.gen.EXPECT().Generate(generator.Options{Root: "/work/app", Warm: true}, true, false).Return(nil)
			},
			wantOut: "Wrote lens.yaml",
		},
		{
			name: "Generator failure is surfaced",
			opts: &Options{Type: CommandInit, Root: "/work/app"},
			expect: func() {
				mocks.gen.EXPECT().Generate(generator.Options{Root: "/work/app", Warm: true}, false, false).Return(errors.New("file lens.yaml already exists"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect()

			out, err := captureStdout(t, func() error { return c.handleInit(tt.opts) })

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			if tt.wantOut == "" {
				assert.Empty(t, out)
			} else {
				assert.Contains(t, out, tt.wantOut)
			}
		})
	}
}

func Test_handleVersion(t *testing.T) {
	c, _ := newTestCLI(t)

	out, err := captureStdout(t, func() error { return c.handleVersion() })

	assert.NoError(t, err)
	assert.Contains(t, out, config.AppName)
	assert.Contains(t, out, config.Version)
}

func Test_normalizeRoots(t *testing.T) {
	roots := normalizeRoots([]string{"/work/app", "/work/lib/../lib"})

	assert.Equal(t, []string{"/work/app", "/work/lib"}, roots)
}

func Test_rootColumnWidth(t *testing.T) {
	// Without a terminal the width falls back to 80 columns; either way the
	// root column never collapses below its floor.
	assert.GreaterOrEqual(t, rootColumnWidth(), 30)
}
