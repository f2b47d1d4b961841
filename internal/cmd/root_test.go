package cmd

import (
	"testing"

	"github.com/taskflowhq/taskflow/internal/config"
)

func TestCommandTree(t *testing.T) {
	expected := []string{
		"auth", "tasks", "users", "companies", "notifications",
		"profile", "dashboard", "analytics", "status", "config",
		"completion", "version",
	}

	for _, name := range expected {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing %q", name)
		}
	}
}

func TestAuthSubcommands(t *testing.T) {
	expected := []string{"login", "logout", "status", "whoami"}
	for _, name := range expected {
		found := false
		for _, c := range authCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("auth command is missing %q", name)
		}
	}
}

func TestRootSilencesUsageOnErrors(t *testing.T) {
	if !rootCmd.SilenceUsage {
		t.Error("runtime errors should not dump usage text")
	}
}

func TestAppWiring(t *testing.T) {
	cfg := &config.Config{
		API:      config.APIConfig{BaseURL: "http://localhost:8000", TimeoutSeconds: 5},
		Access:   config.AccessConfig{DefaultPolicy: "allow"},
		StateDir: t.TempDir(),
	}

	a := newApp(cfg)
	if a.client == nil || a.store == nil || a.guard == nil {
		t.Fatal("app wiring incomplete")
	}
	if a.client.BaseURL() != "http://localhost:8000" {
		t.Errorf("unexpected base URL: %s", a.client.BaseURL())
	}
}

func TestAppWiringDenyPolicy(t *testing.T) {
	cfg := &config.Config{
		API:      config.APIConfig{BaseURL: "http://localhost:8000"},
		Access:   config.AccessConfig{DefaultPolicy: "deny"},
		StateDir: t.TempDir(),
	}

	a := newApp(cfg)
	if a.cfg.Access.DefaultAllow() {
		t.Error("deny policy should not default-allow")
	}
}
