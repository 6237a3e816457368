//go:generate mockgen -source=generator.go -destination=generator_mock.go -package=generator
package generator

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"text/template"

	"lens/internal/app/errors"
	"lens/internal/config/logger"
)

// fileName is written into the current working directory, the same place
// config.Load reads it from.
const fileName = "lens.yaml"

//go:embed templates/lens.yaml.tmpl
var templateFS embed.FS

var starterTemplate = template.Must(template.ParseFS(templateFS, "templates/lens.yaml.tmpl"))

// Options contains the values rendered into the starter lens.yaml
type Options struct {
	Root string
	Warm bool
}

// DefaultOptions is the starter configuration offered when no flags are set
func DefaultOptions() Options {
	return Options{Root: ".", Warm: true}
}

// Generator writes the starter lens.yaml
type Generator interface {
	Generate(opts Options, force bool, dryRun bool) error
}

type generator struct {
	log logger.Logger
}

// NewGenerator creates the starter config generator
func NewGenerator(log logger.Logger) Generator {
	return &generator{log: log.WithComponent("INIT")}
}

// Generate renders the starter config. dryRun prints it to stdout instead
// of writing, and an existing lens.yaml is only replaced with force.
func (g *generator) Generate(opts Options, force bool, dryRun bool) error {
	rendered, err := render(opts)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Print(string(rendered))
		return nil
	}

	if !force {
		if _, err := os.Stat(fileName); err == nil {
			return fmt.Errorf("%w: %s, pass --force to overwrite", errors.ErrConfigFileExists, fileName)
		}
	}

	if err := os.WriteFile(fileName, rendered, 0600); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteConfig, err)
	}

	g.log.Info().Msgf("Wrote %s", fileName)

	return nil
}

func render(opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := starterTemplate.Execute(&buf, opts); err != nil {
		return nil, fmt.Errorf("failed to render starter config: %w", err)
	}

	return buf.Bytes(), nil
}
