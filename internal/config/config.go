package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/taskflowhq/taskflow/internal/errors"
)

// Config holds all client configuration
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Access AccessConfig `mapstructure:"access"`
	Demo   DemoConfig   `mapstructure:"demo"`
	Log    LogConfig    `mapstructure:"log"`

	// StateDir is where the session token and profile snapshot are persisted.
	// Defaults to ~/.taskflow.
	StateDir string `mapstructure:"state_dir"`
}

// APIConfig configures the connection to the TaskFlow backend
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// AccessConfig configures the route-access guard
type AccessConfig struct {
	// DefaultPolicy decides routes that have no configured rule:
	// "allow" (historic behavior) or "deny".
	DefaultPolicy string `mapstructure:"default_policy"`
}

// DefaultAllow reports whether unmapped routes are allowed
func (a AccessConfig) DefaultAllow() bool {
	return !strings.EqualFold(a.DefaultPolicy, "deny")
}

// DemoConfig gates the offline demo account directory
type DemoConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
//
// Resolution order mirrors the rest of the stack: explicit path, then
// ~/.taskflow/config.yaml, then ./config.yaml; TASKFLOW_* environment
// variables override everything. A missing config file is fine, the
// defaults describe a local backend.
func Load(path string) (*Config, error) {
	// .env convenience for local development; absence is not an error.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("access.default_policy", "allow")
	v.SetDefault("demo.enabled", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("state_dir", defaultStateDir())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultStateDir())
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("taskflow")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only surface real parse errors; a missing file falls back to defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if path != "" || !os.IsNotExist(err) {
				return nil, errors.NewConfigLoadError(v.ConfigFileUsed(), err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "failed to parse configuration", err)
	}

	if cfg.API.BaseURL == "" {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "api.base_url cannot be empty")
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	policy := strings.ToLower(cfg.Access.DefaultPolicy)
	if policy != "allow" && policy != "deny" {
		return nil, errors.New(errors.ErrCodeConfigInvalid,
			"access.default_policy must be \"allow\" or \"deny\"")
	}

	return &cfg, nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskflow"
	}
	return filepath.Join(home, ".taskflow")
}
