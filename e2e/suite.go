package e2e

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
)

// syncBuffer collects output written concurrently by the process pipes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// binPath returns the lens binary under test. The whole package is skipped
// when LENS_BIN is unset, so plain go test runs stay hermetic:
//
//	go build -o /tmp/lens ./cmd && LENS_BIN=/tmp/lens go test ./e2e/
func binPath(t *testing.T) string {
	t.Helper()

	bin := os.Getenv("LENS_BIN")
	if bin == "" {
		t.Skip("LENS_BIN not set, skipping end-to-end tests")
	}

	return bin
}

// Fixture sources for the generated workspace. The daemon keys roots by
// absolute path, so the tree is written into a temp directory per test
// instead of living in testdata.
const (
	workManifest = `go 1.24

use (
	./app
	./tool
)
`

	appManifest = `module demo/app

go 1.24
`

	appMainSource = `package main

import (
	"fmt"

	"demo/app/greet"
)

func main() {
	fmt.Println(greet.Greet("lens"))
}
`

	appGreetSource = `package greet

// Greet builds a greeting for the given name.
func Greet(name string) string {
	return "hello, " + name
}
`

	toolManifest = `module demo/tool

go 1.24
`

	toolSource = `package tool

// Version identifies the demo tooling build.
const Version = "0.1.0"
`

	libManifest = `module demo/lib

go 1.24
`

	libSource = `package lib

// Answer is the canonical demo constant.
const Answer = 42
`

	configTemplate = `workspaces:
  %s:
    warm: true
    window: 100ms

watch:
  window: 100ms

api:
  socket: %s
`
)

// Workspace is a disposable on-disk fixture: a config file, a warm
// multi-module root under go.work, and a cold standalone module that the
// daemon only builds when a query asks for it.
type Workspace struct {
	Dir    string
	Root   string
	Lib    string
	Socket string
}

// NewWorkspace writes the fixture tree into a fresh temp directory
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()

	dir := t.TempDir()

	ws := &Workspace{
		Dir:    dir,
		Root:   filepath.Join(dir, "workspace"),
		Lib:    filepath.Join(dir, "lib"),
		Socket: filepath.Join(dir, "lens.sock"),
	}

	files := map[string]string{
		"workspace/go.work":            workManifest,
		"workspace/app/go.mod":         appManifest,
		"workspace/app/main.go":        appMainSource,
		"workspace/app/greet/greet.go": appGreetSource,
		"workspace/tool/go.mod":        toolManifest,
		"workspace/tool/tool.go":       toolSource,
		"lib/go.mod":                   libManifest,
		"lib/lib.go":                   libSource,
		"lens.yaml":                    fmt.Sprintf(configTemplate, ws.Root, ws.Socket),
	}

	for rel, content := range files {
		if err := ws.WriteFile(rel, content); err != nil {
			t.Fatalf("failed to write fixture file %s: %v", rel, err)
		}
	}

	return ws
}

// WriteFile creates or replaces a file below the fixture directory
func (w *Workspace) WriteFile(rel, content string) error {
	full := filepath.Join(w.Dir, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}

	return os.WriteFile(full, []byte(content), 0o644)
}

// RemoveFile deletes a file below the fixture directory
func (w *Workspace) RemoveFile(rel string) error {
	return os.Remove(filepath.Join(w.Dir, rel))
}

// TouchFile rewrites a file with its current content to trigger the watcher
func (w *Workspace) TouchFile(rel string) error {
	full := filepath.Join(w.Dir, rel)

	file, err := os.Stat(full)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	content, err := os.ReadFile(full)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	return os.WriteFile(full, content, file.Mode())
}

// proc is one long-lived lens process under test, with both output
// streams captured. DaemonRunner and EventsRunner embed it and differ
// only in the arguments they launch with and where their output lands.
type proc struct {
	t       *testing.T
	bin     string
	workDir string
	cmd     *exec.Cmd
	stdout  *syncBuffer
	stderr  *syncBuffer
}

func newProc(t *testing.T, ws *Workspace) proc {
	t.Helper()

	return proc{
		t:       t,
		bin:     binPath(t),
		workDir: ws.Dir,
		stdout:  &syncBuffer{},
		stderr:  &syncBuffer{},
	}
}

// start launches the binary with args, running in the fixture directory
func (p *proc) start(args ...string) error {
	p.cmd = exec.Command(p.bin, args...)
	p.cmd.Dir = p.workDir
	p.cmd.Stdout = p.stdout
	p.cmd.Stderr = p.stderr

	if err := p.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start lens %s: %w", strings.Join(args, " "), err)
	}

	return nil
}

// stop signals SIGTERM and gives the process grace to exit before killing
// it. A signal failure means the process is already gone, which stop
// treats as stopped.
func (p *proc) stop(grace time.Duration) error {
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}

	p.cmd.Process.Signal(syscall.SIGTERM)

	done := make(chan error, 1)

	go func() {
		done <- p.cmd.Wait()
	}()

	select {
	case <-done:
		return nil
	case <-time.After(grace):
		p.cmd.Process.Kill()
		<-done

		return fmt.Errorf("process did not exit within %s, killed", grace)
	}
}

// waitFor polls source until it contains pattern or the timeout lapses
func (p *proc) waitFor(pattern string, timeout time.Duration, source func() string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for %q\nOutput:\n%s", pattern, source())
		case <-ticker.C:
			if strings.Contains(source(), pattern) {
				return nil
			}
		}
	}
}

// Output returns everything the process printed to stdout so far
func (p *proc) Output() string {
	return p.stdout.String()
}

// Stderr returns everything the process printed to stderr so far
func (p *proc) Stderr() string {
	return p.stderr.String()
}

// combined merges both streams for pattern scans
func (p *proc) combined() string {
	return p.stdout.String() + "\n" + p.stderr.String()
}

// DaemonRunner manages a lens serve process for e2e tests
type DaemonRunner struct {
	proc
}

// NewDaemonRunner creates a runner serving the fixture directory
func NewDaemonRunner(t *testing.T, ws *Workspace) *DaemonRunner {
	t.Helper()

	return &DaemonRunner{proc: newProc(t, ws)}
}

// Start launches lens serve in the fixture directory
func (r *DaemonRunner) Start() error {
	return r.start("serve")
}

// Stop asks the daemon to shut down and allows it ample grace, since a
// clean stop tears down watchers and the socket
func (r *DaemonRunner) Stop() error {
	return r.stop(10 * time.Second)
}

// WaitForLog blocks until pattern appears in the daemon output or timeout.
// Log lines land on stderr, so both streams are scanned.
func (r *DaemonRunner) WaitForLog(pattern string, timeout time.Duration) error {
	return r.waitFor(pattern, timeout, r.combined)
}

// WaitForListening waits until the socket server accepts connections
func (r *DaemonRunner) WaitForListening(timeout time.Duration) error {
	return r.WaitForLog("Listening on", timeout)
}

// WaitForReady waits until a root's representation is cached
func (r *DaemonRunner) WaitForReady(root string, timeout time.Duration) error {
	return r.WaitForLog(fmt.Sprintf("Cached %s", root), timeout)
}

// ExitCode returns the process exit code, valid after Stop
func (r *DaemonRunner) ExitCode() int {
	if r.cmd == nil || r.cmd.ProcessState == nil {
		return -1
	}

	return r.cmd.ProcessState.ExitCode()
}

// CommandRunner executes one-shot lens commands against a running daemon
type CommandRunner struct {
	t       *testing.T
	bin     string
	workDir string
}

// NewCommandRunner creates a runner issuing commands from the fixture directory
func NewCommandRunner(t *testing.T, ws *Workspace) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		t:       t,
		bin:     binPath(t),
		workDir: ws.Dir,
	}
}

// Run executes one command and returns stdout, stderr and the exit code
func (r *CommandRunner) Run(args ...string) (string, string, int) {
	r.t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := exec.Command(r.bin, args...)
	cmd.Dir = r.workDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			r.t.Fatalf("failed to run lens %s: %v", strings.Join(args, " "), err)
		}

		exitCode = exitErr.ExitCode()
	}

	return stdout.String(), stderr.String(), exitCode
}

// EventsRunner manages a lens events stream for e2e tests
type EventsRunner struct {
	proc
}

// NewEventsRunner creates a runner streaming events from the fixture directory
func NewEventsRunner(t *testing.T, ws *Workspace) *EventsRunner {
	t.Helper()

	return &EventsRunner{proc: newProc(t, ws)}
}

// Start launches lens events --no-ui with an optional root filter
func (r *EventsRunner) Start(roots ...string) error {
	args := []string{"events", "--no-ui"}

	for _, root := range roots {
		args = append(args, "--root", root)
	}

	return r.start(args...)
}

// Stop ends the stream. The short grace suffices because the process
// exits as soon as its connection drops.
func (r *EventsRunner) Stop() error {
	return r.stop(5 * time.Second)
}

// WaitForLog blocks until pattern appears on the stream or timeout.
// Event frames land on stdout, which is all this runner scans.
func (r *EventsRunner) WaitForLog(pattern string, timeout time.Duration) error {
	return r.waitFor(pattern, timeout, r.Output)
}

// statusReply mirrors the JSON printed by lens status --json
type statusReply struct {
	Version string `json:"version"`
	Socket  string `json:"socket"`
	Process struct {
		PID int `json:"pid"`
	} `json:"process"`
	Roots []rootStatus `json:"roots"`
}

// rootStatus is one cached root in a status reply
type rootStatus struct {
	Root      string `json:"root"`
	State     string `json:"state"`
	Projects  int    `json:"projects"`
	Documents int    `json:"documents"`
}

// declaration mirrors one match printed by symbol and doc --json queries
type declaration struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Signature string `json:"signature"`
	Doc       string `json:"doc"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	Project   string `json:"project"`
}

// reference mirrors one use site printed by lens refs --json
type reference struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Excerpt string `json:"excerpt"`
}
