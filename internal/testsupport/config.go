// Package testsupport provides fixtures shared across package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"mutablerig/internal/config"
	"mutablerig/internal/scene"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories and the
// sample scene per test. It defaults common fields and applies any provided
// options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ScenePath = filepath.Join(base, "scene.toml")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.SocketPath = filepath.Join(base, "mutablerig.sock")

	if err := scene.CreateSample(cfgVal.Paths.ScenePath); err != nil {
		t.Fatalf("write sample scene: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSettleEvents sets the host settle emulation depth on the test config.
func WithSettleEvents(events int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Timeline.SettleEvents = events
	}
}

// WithRecordPoses toggles pose snapshots in the transfer journal.
func WithRecordPoses(record bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Switcher.RecordPoses = record
	}
}

// WithScene writes the given scene document text in place of the sample.
func WithScene(contents string) ConfigOption {
	return func(b *configBuilder) {
		WriteScene(b.t, b.cfg.Paths.ScenePath, contents)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
