package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = "1.2.0", "abc123def456", "2026-01-01T12:00:00Z"
	t.Cleanup(func() { Version, Commit, Date = origVersion, origCommit, origDate })

	info := Get()
	if info.Version != "1.2.0" || info.Commit != "abc123def456" || info.Date != "2026-01-01T12:00:00Z" {
		t.Errorf("Get() = %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %v, want %v", info.GoVersion, runtime.Version())
	}
	if want := runtime.GOOS + "/" + runtime.GOARCH; info.Platform != want {
		t.Errorf("Platform = %v, want %v", info.Platform, want)
	}
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "1.2.0",
		Commit:    "abc123def456",
		Date:      "2026-01-01",
		GoVersion: "go1.24.0",
		Platform:  "linux/amd64",
	}

	got := info.String()
	for _, want := range []string{"TaskFlow", "1.2.0", "abc123de", "2026-01-01", "go1.24.0", "linux/amd64"} {
		if !strings.Contains(got, want) {
			t.Errorf("Info.String() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "abc123def456") {
		t.Errorf("Info.String() = %q, commit not truncated", got)
	}

	// Commits shorter than the truncation width pass through whole.
	info.Commit = "abc123"
	if !strings.Contains(info.String(), "(abc123)") {
		t.Errorf("Info.String() = %q, short commit mangled", info.String())
	}
}

func TestInfoShort(t *testing.T) {
	if got := (Info{Version: "1.2.0-rc1"}).Short(); got != "1.2.0-rc1" {
		t.Errorf("Short() = %q", got)
	}
}

func TestDefaults(t *testing.T) {
	info := Get()
	if info.Version == "" || info.Commit == "" || info.Date == "" {
		t.Errorf("Get() has empty defaults: %+v", info)
	}
}
