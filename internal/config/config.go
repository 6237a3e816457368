package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"lens/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	Workspaces map[string]*Workspace `yaml:"workspaces"`
	Logging    struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	}
	Watch struct {
		Window     time.Duration `yaml:"window"`
		Retention  time.Duration `yaml:"retention"`
		Sweep      time.Duration `yaml:"sweep"`
		Queue      int           `yaml:"queue"`
		Extensions []string      `yaml:"extensions"`
		Skip       []string      `yaml:"skip"`
		Ignore     []string      `yaml:"ignore"`
	}
	Apply struct {
		Attempts int           `yaml:"attempts"`
		Backoff  time.Duration `yaml:"backoff"`
		Workers  int           `yaml:"workers"`
	}
	API struct {
		Socket string `yaml:"socket"`
		Buffer int    `yaml:"buffer"`
	}
	Version int
}

// Workspace represents per-root overrides and warm-up behavior
type Workspace struct {
	Warm   bool          `yaml:"warm"`
	Window time.Duration `yaml:"window"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		Workspaces: make(map[string]*Workspace),
		Version:    1,
	}

	cfg.Logging.Level = DefaultLogLevel
	cfg.Logging.Format = DefaultLogFormat

	cfg.Watch.Window = DebounceWindow
	cfg.Watch.Retention = SweepRetention
	cfg.Watch.Sweep = SweepInterval
	cfg.Watch.Queue = QueueSize
	cfg.Watch.Extensions = DefaultExtensions()
	cfg.Watch.Skip = DefaultSkipDirs()

	cfg.Apply.Attempts = ReadAttempts
	cfg.Apply.Backoff = ReadBackoff
	cfg.Apply.Workers = MaxReadWorkers

	cfg.API.Buffer = EventsBufferSize

	return cfg
}

// DefaultExtensions returns the extension allow-list for watched files:
// source files plus module manifests (go.mod/go.work/go.sum carry .mod/.work/.sum).
func DefaultExtensions() []string {
	return []string{".go", ".mod", ".work", ".sum"}
}

// DefaultSkipDirs returns directory names excluded from watching and indexing
func DefaultSkipDirs() []string {
	return []string{".git", "node_modules", "vendor", ".idea", ".vscode", "bin", "obj", "testdata"}
}

// Load loads the configuration from lens.yaml in the working directory.
// A missing file yields the defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile("lens.yaml")
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, errors.ErrFailedToReadConfig
	}

	// Workspace roots are case-significant paths; viper lowercases map keys,
	// so the workspaces section is parsed from the raw document instead.
	workspaces, err := parseWorkspaces(data)
	if err != nil {
		return nil, errors.ErrFailedToParseConfig
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.ErrFailedToReadConfig
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ErrFailedToParseConfig
	}

	cfg.Workspaces = workspaces
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// ApplyDefaults fills unset fields back in after unmarshalling.
// Negative values are left for Validate to reject.
func (c *Config) ApplyDefaults() {
	if c.Watch.Window == 0 {
		c.Watch.Window = DebounceWindow
	}

	if c.Watch.Retention == 0 {
		c.Watch.Retention = SweepRetention
	}

	if c.Watch.Sweep == 0 {
		c.Watch.Sweep = SweepInterval
	}

	if c.Watch.Queue == 0 {
		c.Watch.Queue = QueueSize
	}

	if len(c.Watch.Extensions) == 0 {
		c.Watch.Extensions = DefaultExtensions()
	}

	if len(c.Watch.Skip) == 0 {
		c.Watch.Skip = DefaultSkipDirs()
	}

	if c.Apply.Attempts == 0 {
		c.Apply.Attempts = ReadAttempts
	}

	if c.Apply.Backoff == 0 {
		c.Apply.Backoff = ReadBackoff
	}

	if c.Apply.Workers == 0 {
		c.Apply.Workers = MaxReadWorkers
	}

	if c.API.Buffer == 0 {
		c.API.Buffer = EventsBufferSize
	}

	for _, ws := range c.Workspaces {
		if ws.Window == 0 {
			ws.Window = c.Watch.Window
		}
	}
}

// parseWorkspaces extracts the workspaces mapping with key case preserved
func parseWorkspaces(data []byte) (map[string]*Workspace, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	workspaces := make(map[string]*Workspace)

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return workspaces, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return workspaces, nil
	}

	for i := 0; i < len(doc.Content); i += 2 {
		key := doc.Content[i]
		value := doc.Content[i+1]

		if key.Value != "workspaces" || value.Kind != yaml.MappingNode {
			continue
		}

		for j := 0; j < len(value.Content); j += 2 {
			rootPath := strings.TrimSpace(value.Content[j].Value)
			wsNode := value.Content[j+1]

			if rootPath == "" {
				continue
			}

			ws := &Workspace{}

			if wsNode.Kind == yaml.MappingNode {
				if err := decodeWorkspace(wsNode, ws); err != nil {
					return nil, err
				}
			}

			workspaces[rootPath] = ws
		}
	}

	return workspaces, nil
}

// decodeWorkspace reads workspace fields from a mapping node. Durations come
// in as scalars like "750ms", which yaml cannot decode into time.Duration.
func decodeWorkspace(node *yaml.Node, ws *Workspace) error {
	for i := 0; i < len(node.Content); i += 2 {
		fieldKey := node.Content[i]
		fieldValue := node.Content[i+1]

		switch fieldKey.Value {
		case "warm":
			warm, err := strconv.ParseBool(fieldValue.Value)
			if err != nil {
				return err
			}

			ws.Warm = warm
		case "window":
			window, err := time.ParseDuration(fieldValue.Value)
			if err != nil {
				return err
			}

			ws.Window = window
		}
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateWatch(); err != nil {
		return err
	}

	if err := c.validateApply(); err != nil {
		return err
	}

	if c.API.Buffer <= 0 {
		return errors.ErrInvalidAPIBuffer
	}

	for _, ext := range c.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: extension %q must start with a dot", errors.ErrInvalidExtension, ext)
		}
	}

	for root, ws := range c.Workspaces {
		if ws.Window <= 0 {
			return fmt.Errorf("workspace %s: %w", root, errors.ErrInvalidWatchWindow)
		}
	}

	return nil
}

// validateWatch validates watch settings
func (c *Config) validateWatch() error {
	if c.Watch.Window <= 0 {
		return errors.ErrInvalidWatchWindow
	}

	if c.Watch.Retention < c.Watch.Window {
		return errors.ErrInvalidWatchRetention
	}

	if c.Watch.Queue <= 0 {
		return errors.ErrInvalidWatchQueue
	}

	return nil
}

// validateApply validates apply settings
func (c *Config) validateApply() error {
	if c.Apply.Attempts <= 0 {
		return errors.ErrInvalidApplyAttempts
	}

	if c.Apply.Backoff < 0 {
		return errors.ErrInvalidApplyBackoff
	}

	if c.Apply.Workers <= 0 {
		return errors.ErrInvalidApplyWorkers
	}

	return nil
}
