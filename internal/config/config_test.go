package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.True(t, cfg.Access.DefaultAllow())
	assert.False(t, cfg.Demo.Enabled)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
api:
  base_url: https://taskflow.example.com/
  timeout_seconds: 5
access:
  default_policy: deny
demo:
  enabled: true
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Trailing slash is normalized away
	assert.Equal(t, "https://taskflow.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.TimeoutSeconds)
	assert.False(t, cfg.Access.DefaultAllow())
	assert.True(t, cfg.Demo.Enabled)
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("access:\n  default_policy: maybe\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_policy")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TASKFLOW_API_BASE_URL", "http://10.0.0.5:9000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", cfg.API.BaseURL)
}

func TestWriteStarter(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteStarter(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)

	// Second write must refuse to clobber
	_, err = WriteStarter(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAPITimeoutFallback(t *testing.T) {
	a := APIConfig{TimeoutSeconds: 0}
	assert.Equal(t, "30s", a.Timeout().String())

	a.TimeoutSeconds = 5
	assert.Equal(t, "5s", a.Timeout().String())
}
