package session

import (
	"context"
	"errors"
	"testing"

	"mutablerig/internal/curve"
	"mutablerig/internal/logging"
	"mutablerig/internal/rig"
	"mutablerig/internal/scene"
	"mutablerig/internal/switcher"
)

func buildScene(t *testing.T) *scene.Scene {
	t.Helper()
	doc := &scene.Document{
		Name: "test",
		Rigs: []scene.RigDoc{
			{
				ID:   "rig_a",
				Root: "char|rig_a",
				Joints: []scene.JointDoc{
					{Name: "hips"},
				},
				Curves: []scene.CurveDoc{
					{Joint: "hips", Channel: "tx", Keys: [][]float64{{0, 0}, {10, 10}}},
				},
			},
			{
				ID:     "rig_b",
				Root:   "char|rig_b",
				Joints: []scene.JointDoc{{Name: "hips"}},
			},
		},
		Table: []scene.Definition{
			{Frame: 0, Rig: "rig_a"},
			{Frame: 10, Rig: "rig_b"},
		},
	}
	sc, err := scene.Build(doc)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return sc
}

func TestHostSettleWindowBlocksFirstCapture(t *testing.T) {
	h := newHost(buildScene(t), 1, logging.NewNop())
	ctx := context.Background()

	h.noteTimeChange(10)
	if _, err := h.CapturePose(ctx, "rig_a", 10); !errors.Is(err, curve.ErrNotSettled) {
		t.Fatalf("expected ErrNotSettled, got %v", err)
	}

	pose, err := h.CapturePose(ctx, "rig_a", 10)
	if err != nil {
		t.Fatalf("second capture should settle: %v", err)
	}
	if pose.Joints["hips"]["tx"] != 10 {
		t.Fatalf("expected last-key tx=10, got %v", pose.Joints["hips"]["tx"])
	}

	mid, err := h.CapturePose(ctx, "rig_a", 5)
	if err != nil {
		t.Fatalf("capture at midpoint: %v", err)
	}
	if mid.Joints["hips"]["tx"] != 5 {
		t.Fatalf("expected interpolated tx=5, got %v", mid.Joints["hips"]["tx"])
	}
}

func TestHostFrameAdvanceDoesNotRearmDuringDeferredRead(t *testing.T) {
	h := newHost(buildScene(t), 1, logging.NewNop())
	ctx := context.Background()

	h.noteTimeChange(10)
	if _, err := h.CapturePose(ctx, "rig_a", 10); !errors.Is(err, curve.ErrNotSettled) {
		t.Fatalf("expected ErrNotSettled, got %v", err)
	}

	// Playback moved on before the retry; the outstanding read must still
	// succeed or continuous playback would never complete a switch.
	h.noteTimeChange(11)
	if _, err := h.CapturePose(ctx, "rig_a", 11); err != nil {
		t.Fatalf("capture after deferral should succeed: %v", err)
	}
}

func TestHostZeroSettleEventsCapturesImmediately(t *testing.T) {
	h := newHost(buildScene(t), 0, logging.NewNop())
	h.noteTimeChange(10)
	if _, err := h.CapturePose(context.Background(), "rig_a", 10); err != nil {
		t.Fatalf("capture should succeed with settle disabled: %v", err)
	}
}

func TestHostRepeatedEventDoesNotRearm(t *testing.T) {
	h := newHost(buildScene(t), 1, logging.NewNop())
	ctx := context.Background()

	h.noteTimeChange(10)
	if _, err := h.CapturePose(ctx, "rig_a", 10); err == nil {
		t.Fatal("expected first capture to fail")
	}
	h.noteTimeChange(10)
	if _, err := h.CapturePose(ctx, "rig_a", 10); err != nil {
		t.Fatalf("repeated event must not re-arm the settle window: %v", err)
	}
}

func TestHostActivateTogglesVisibility(t *testing.T) {
	sc := buildScene(t)
	h := newHost(sc, 0, logging.NewNop())
	ctx := context.Background()

	if err := h.Activate(ctx, "rig_a"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if err := h.Activate(ctx, "rig_b"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	rigA, _ := sc.Rig("rig_a")
	rigB, _ := sc.Rig("rig_b")
	if rigA.Visible() || !rigB.Visible() {
		t.Fatalf("visibility not exclusive: a=%v b=%v", rigA.Visible(), rigB.Visible())
	}
}

func TestHostApplyPoseReportsUnknownRig(t *testing.T) {
	h := newHost(buildScene(t), 0, logging.NewNop())
	err := h.ApplyPose(context.Background(), "rig_missing", rig.Pose{})
	if err == nil {
		t.Fatal("expected unknown rig error")
	}
}

// The host satisfies the controller's contract.
var _ switcher.Host = (*host)(nil)
