package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/testforge-dev/testforge/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Catalog holds test type catalog configuration
type Catalog struct {
	Path string
}

// Flags returns CLI flags for Catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "test-types",
			Usage:       "Path to a YAML file overriding the built-in test type catalog",
			Category:    "Catalog",
			Sources:     cli.EnvVars("TESTFORGE_TEST_TYPES"),
			Destination: &c.Path,
		},
	}
}

// Configure loads the test type catalog. Without a path the built-in
// catalog is used.
func (c *Catalog) Configure() (*model.Catalog, error) {
	if c.Path == "" {
		return model.DefaultCatalog(), nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "test type catalog file not found",
				goerr.V("path", c.Path))
		}
		return nil, goerr.Wrap(err, "failed to read test type catalog",
			goerr.V("path", c.Path))
	}

	var catalog model.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(err, "failed to parse test type catalog",
			goerr.V("path", c.Path))
	}

	if err := catalog.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid test type catalog",
			goerr.V("path", c.Path))
	}

	return &catalog, nil
}

// LogValue returns structured log value
func (c Catalog) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", c.Path),
	)
}
