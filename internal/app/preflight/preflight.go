//go:generate mockgen -source=preflight.go -destination=preflight_mock.go -package=preflight
package preflight

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"lens/internal/app/errors"
	"lens/internal/app/server"
	"lens/internal/config"
	"lens/internal/config/logger"
)

// Preflight validates the environment before the daemon starts serving
type Preflight interface {
	Check() error
}

type dialFunc func(socketPath string) error

type preflight struct {
	cfg  *config.Config
	dial dialFunc
	log  logger.Logger
}

// NewPreflight creates a new Preflight instance
func NewPreflight(cfg *config.Config, log logger.Logger) Preflight {
	return &preflight{
		cfg:  cfg,
		dial: dialProbe,
		log:  log.WithComponent("PREFLIGHT"),
	}
}

// Check runs all pre-start validations. Hard failures abort the start;
// workspace problems only cost that root its warm-up and are logged.
func (p *preflight) Check() error {
	if err := p.cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	p.checkWorkspaces()

	if err := p.checkSocketDir(); err != nil {
		return err
	}

	return p.checkNoLiveDaemon()
}

// checkWorkspaces warns about configured roots that cannot be warmed
func (p *preflight) checkWorkspaces() {
	for root := range p.cfg.Workspaces {
		info, err := os.Stat(root)

		switch {
		case err != nil:
			p.log.Warn().Msgf("Workspace root %s does not exist, skipping warm-up", root)
		case !info.IsDir():
			p.log.Warn().Msgf("Workspace root %s is not a directory, skipping warm-up", root)
		}
	}
}

// checkSocketDir verifies the socket can be created where configured
func (p *preflight) checkSocketDir() error {
	dir := filepath.Dir(server.SocketPath(p.cfg))

	probe, err := os.CreateTemp(dir, "lens-probe-*")
	if err != nil {
		return fmt.Errorf("%w: %s", errors.ErrSocketDirNotWritable, dir)
	}

	probe.Close()
	os.Remove(probe.Name())

	return nil
}

// checkNoLiveDaemon refuses to start over a daemon that still answers
func (p *preflight) checkNoLiveDaemon() error {
	socketPath := server.SocketPath(p.cfg)

	if _, err := os.Stat(socketPath); os.IsNotExist(err) {
		return nil
	}

	if err := p.dial(socketPath); err == nil {
		return fmt.Errorf("%w: %s", errors.ErrSocketInUse, socketPath)
	}

	// Leftover socket file with nobody behind it; the server removes
	// it when binding.
	return nil
}

func dialProbe(socketPath string) error {
	conn, err := net.DialTimeout("unix", socketPath, config.DialTimeout)
	if err != nil {
		return err
	}

	conn.Close()

	return nil
}
