package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mutablerig/internal/config"
	"mutablerig/internal/ipc"
	"mutablerig/internal/logging"
	"mutablerig/internal/session"
	"mutablerig/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	socketPath string
	sess       *session.Session
}

// setupCLITestEnv starts a session with an IPC server in-process and writes
// a config file pointing commands at it.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithSettleEvents(0))
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeConfigFile(t, configPath, cfg)

	sess := testsupport.MustStartSession(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	srv, err := ipc.NewServer(ctx, cfg.Paths.SocketPath, sess, logging.NewNop(), cancel)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping CLI test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(srv.Close)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		socketPath: cfg.Paths.SocketPath,
		sess:       sess,
	}
}

// setupOfflineEnv writes a config file without starting any session.
func setupOfflineEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeConfigFile(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		socketPath: cfg.Paths.SocketPath,
	}
}

func writeConfigFile(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	contents := fmt.Sprintf(`[paths]
scene_path = %q
data_dir = %q
log_dir = %q
socket_path = %q

[timeline]
settle_events = %d

[logging]
format = "console"
level = "error"
`,
		cfg.Paths.ScenePath,
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Paths.SocketPath,
		cfg.Timeline.SettleEvents,
	)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, socketPath, configPath string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	full := append([]string{"--socket", socketPath, "--config", configPath}, args...)
	cmd.SetArgs(full)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
