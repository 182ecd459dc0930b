package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/testforge-dev/testforge/pkg/cli/config"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test_types.yml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestCatalogConfigure(t *testing.T) {
	t.Run("returns the built-in catalog without a path", func(t *testing.T) {
		cfg := &config.Catalog{}

		catalog, err := cfg.Configure()
		gt.NoError(t, err)
		gt.V(t, catalog).NotNil()
		gt.True(t, catalog.IsValidTestTypeID("Functional"))
	})

	t.Run("loads a catalog from a YAML file", func(t *testing.T) {
		path := writeCatalogFile(t, `test_types:
  - id: Smoke
    name: Smoke Testing
    description: Fast sanity checks after a deploy
  - id: Regression
    name: Regression Testing
`)
		cfg := &config.Catalog{Path: path}

		catalog, err := cfg.Configure()
		gt.NoError(t, err)
		gt.Equal(t, catalog.TestTypeIDs(), []string{"Smoke", "Regression"})
		gt.False(t, catalog.IsValidTestTypeID("Functional"))
	})

	t.Run("fails when the file does not exist", func(t *testing.T) {
		cfg := &config.Catalog{Path: filepath.Join(t.TempDir(), "missing.yml")}

		_, err := cfg.Configure()
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("test type catalog file not found")
	})

	t.Run("fails on malformed YAML", func(t *testing.T) {
		path := writeCatalogFile(t, "test_types: [broken")
		cfg := &config.Catalog{Path: path}

		_, err := cfg.Configure()
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("failed to parse test type catalog")
	})

	t.Run("fails on duplicate test type IDs", func(t *testing.T) {
		path := writeCatalogFile(t, `test_types:
  - id: Smoke
    name: Smoke Testing
  - id: Smoke
    name: Smoke Again
`)
		cfg := &config.Catalog{Path: path}

		_, err := cfg.Configure()
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("duplicate test type ID")
	})
}
