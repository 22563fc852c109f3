package session_test

import (
	"context"
	"path/filepath"
	"testing"

	"mutablerig/internal/config"
	"mutablerig/internal/journal"
	"mutablerig/internal/logging"
	"mutablerig/internal/scene"
	"mutablerig/internal/session"
)

func newSession(t *testing.T, settleEvents int) *session.Session {
	t.Helper()
	base := t.TempDir()
	scenePath := filepath.Join(base, "scene.toml")
	if err := scene.CreateSample(scenePath); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg := config.Default()
	cfg.Paths.ScenePath = scenePath
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Timeline.SettleEvents = settleEvents
	cfg.Switcher.RecordPoses = true

	store, err := journal.Open(&cfg)
	if err != nil {
		t.Fatalf("journal.Open failed: %v", err)
	}

	sess, err := session.New(&cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("session.New failed: %v", err)
	}
	t.Cleanup(func() {
		_ = sess.Close()
	})
	return sess
}

func TestStartActivatesInitialRig(t *testing.T) {
	sess := newSession(t, 0)
	ctx := context.Background()

	if err := sess.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if sess.ActiveRig() != "rig_proxy" {
		t.Fatalf("expected rig_proxy active, got %q", sess.ActiveRig())
	}

	status := sess.Status(ctx)
	if !status.Running || status.SceneName != "bob" {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.TransferCount != 0 {
		t.Fatalf("initial activation must not journal a transfer, got %d", status.TransferCount)
	}
	if status.StartFrame != 1 || status.EndFrame != 100 {
		t.Fatalf("scene timeline not honored: %+v", status)
	}
}

func TestScrubAcrossBoundarySwitchesImmediately(t *testing.T) {
	sess := newSession(t, 0)
	ctx := context.Background()
	if err := sess.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	frame, err := sess.Scrub(ctx, 45)
	if err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	if frame != 45 {
		t.Fatalf("expected frame 45, got %v", frame)
	}
	if sess.ActiveRig() != "rig_full" {
		t.Fatalf("expected rig_full active, got %q", sess.ActiveRig())
	}

	entries, err := sess.Transfers(ctx, 0)
	if err != nil {
		t.Fatalf("Transfers failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one journaled transfer, got %d", len(entries))
	}
	entry := entries[0]
	if entry.FromRig != "rig_proxy" || entry.ToRig != "rig_full" || entry.Frame != 45 {
		t.Fatalf("unexpected transfer: %+v", entry)
	}
	if entry.PoseJSON == "" {
		t.Fatal("expected pose snapshot in journal")
	}
}

func TestScrubAcrossBoundaryDefersUntilSettled(t *testing.T) {
	sess := newSession(t, 1)
	ctx := context.Background()
	if err := sess.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, err := sess.Scrub(ctx, 45); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	if sess.ActiveRig() != "rig_proxy" {
		t.Fatalf("switch should be deferred, active is %q", sess.ActiveRig())
	}
	status := sess.Status(ctx)
	if status.PendingRig != "rig_full" || status.Deferrals != 1 {
		t.Fatalf("expected pending switch, got %+v", status)
	}

	// A redundant refresh event at the same frame completes the switch.
	if _, err := sess.Scrub(ctx, 45); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	if sess.ActiveRig() != "rig_full" {
		t.Fatalf("expected rig_full after settle, got %q", sess.ActiveRig())
	}
	status = sess.Status(ctx)
	if status.PendingRig != "" || status.TransferCount != 1 {
		t.Fatalf("expected completed switch, got %+v", status)
	}
}

func TestScrubBackAndForthTransfersBothWays(t *testing.T) {
	sess := newSession(t, 0)
	ctx := context.Background()
	if err := sess.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, err := sess.Scrub(ctx, 60); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	if _, err := sess.Scrub(ctx, 5); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	if sess.ActiveRig() != "rig_proxy" {
		t.Fatalf("expected rig_proxy after scrub back, got %q", sess.ActiveRig())
	}

	entries, err := sess.Transfers(ctx, 0)
	if err != nil {
		t.Fatalf("Transfers failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two transfers, got %d", len(entries))
	}
	if entries[1].FromRig != "rig_full" || entries[1].ToRig != "rig_proxy" {
		t.Fatalf("unexpected reverse transfer: %+v", entries[1])
	}
}

func TestPlayRunsSwitchDuringPlayback(t *testing.T) {
	sess := newSession(t, 0)
	ctx := context.Background()
	if err := sess.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Drive the range synchronously through scrubs, one frame at a time,
	// the same event stream playback produces.
	for frame := 38.0; frame <= 42; frame++ {
		if _, err := sess.Scrub(ctx, frame); err != nil {
			t.Fatalf("Scrub failed: %v", err)
		}
	}
	if sess.ActiveRig() != "rig_full" {
		t.Fatalf("expected rig_full after crossing boundary, got %q", sess.ActiveRig())
	}
	status := sess.Status(ctx)
	if status.TransferCount != 1 {
		t.Fatalf("expected exactly one transfer, got %d", status.TransferCount)
	}
}

func TestSecondSessionCannotAcquireLock(t *testing.T) {
	base := t.TempDir()
	scenePath := filepath.Join(base, "scene.toml")
	if err := scene.CreateSample(scenePath); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg := config.Default()
	cfg.Paths.ScenePath = scenePath
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	store, err := journal.Open(&cfg)
	if err != nil {
		t.Fatalf("journal.Open failed: %v", err)
	}
	first, err := session.New(&cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("session.New failed: %v", err)
	}
	defer first.Close()

	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}

	secondStore, err := journal.Open(&cfg)
	if err != nil {
		t.Fatalf("journal.Open failed: %v", err)
	}
	second, err := session.New(&cfg, secondStore, logging.NewNop())
	if err != nil {
		t.Fatalf("session.New failed: %v", err)
	}
	defer second.Close()

	if err := second.Start(context.Background()); err == nil {
		t.Fatal("expected lock contention error")
	}
}

func TestStopReleasesLockForRestart(t *testing.T) {
	sess := newSession(t, 0)
	ctx := context.Background()
	if err := sess.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	sess.Stop()
	if sess.Status(ctx).Running {
		t.Fatal("session should report stopped")
	}
	if err := sess.Start(ctx); err != nil {
		t.Fatalf("restart after stop failed: %v", err)
	}
}

func TestScrubRequiresRunningSession(t *testing.T) {
	sess := newSession(t, 0)
	if _, err := sess.Scrub(context.Background(), 10); err == nil {
		t.Fatal("expected error before Start")
	}
}
