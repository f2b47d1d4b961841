package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/taskflowhq/taskflow/internal/errors"
)

// starterConfig is the shape written by WriteStarter. It intentionally spells
// out every key so a fresh install documents itself.
type starterConfig struct {
	API struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"api"`
	Access struct {
		DefaultPolicy string `yaml:"default_policy"`
	} `yaml:"access"`
	Demo struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"demo"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// WriteStarter writes a commented-defaults config file into dir and returns
// its path. Refuses to overwrite an existing file.
func WriteStarter(dir string) (string, error) {
	if dir == "" {
		dir = defaultStateDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeDirectoryFailed, "failed to create config directory", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return "", errors.New(errors.ErrCodeConfigWriteFailed, "config file already exists: "+path).
			WithSuggestion("Edit the existing file instead, or remove it first")
	}

	var sc starterConfig
	sc.API.BaseURL = "http://localhost:8000"
	sc.API.TimeoutSeconds = 30
	sc.Access.DefaultPolicy = "allow"
	sc.Demo.Enabled = false
	sc.Log.Level = "warn"
	sc.Log.Format = "text"

	data, err := yaml.Marshal(&sc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigWriteFailed, "failed to render configuration", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write "+path, err)
	}

	return path, nil
}
