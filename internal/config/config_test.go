package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mutablerig/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaultsWhenFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := config.Load(missing)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved != missing {
		t.Fatalf("expected resolved path %q, got %q", missing, resolved)
	}
	if cfg.Timeline.FrameRate != 24.0 {
		t.Fatalf("expected default frame rate, got %v", cfg.Timeline.FrameRate)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	path := writeConfig(t, `
[timeline]
frame_rate = 30.0
start_frame = 10.0
end_frame = 50.0
settle_events = -3

[logging]
format = "JSON"
level = "Debug"
`)
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Timeline.FrameRate != 30.0 {
		t.Fatalf("expected frame rate 30, got %v", cfg.Timeline.FrameRate)
	}
	if cfg.Timeline.SettleEvents != 0 {
		t.Fatalf("expected negative settle_events clamped to 0, got %d", cfg.Timeline.SettleEvents)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased logging values, got %+v", cfg.Logging)
	}
	if cfg.Paths.SocketPath == "" {
		t.Fatal("expected socket path default derived from data dir")
	}
}

func TestLoadRejectsInvertedFrameRange(t *testing.T) {
	path := writeConfig(t, `
[timeline]
start_frame = 100.0
end_frame = 1.0
`)
	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected validation error for inverted frame range")
	}
	if !strings.Contains(err.Error(), "end_frame") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	path := writeConfig(t, `
[logging]
format = "yaml"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for unsupported log format")
	}
}

func TestLoadRejectsZeroMaxDeferrals(t *testing.T) {
	path := writeConfig(t, `
[switcher]
max_deferrals = -1
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for negative max_deferrals")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Switcher.MaxDeferrals != 8 {
		t.Fatalf("unexpected sample max_deferrals: %d", cfg.Switcher.MaxDeferrals)
	}
}

func TestJournalAndLockPathsDeriveFromDataDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = "/tmp/mutablerig-test"
	if got := cfg.JournalPath(); got != "/tmp/mutablerig-test/journal.db" {
		t.Fatalf("unexpected journal path: %q", got)
	}
	if got := cfg.LockPath(); got != "/tmp/mutablerig-test/session.lock" {
		t.Fatalf("unexpected lock path: %q", got)
	}
}
