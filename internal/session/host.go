package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"mutablerig/internal/curve"
	"mutablerig/internal/logging"
	"mutablerig/internal/rig"
	"mutablerig/internal/scene"
)

// host adapts a loaded scene to the switch controller. It reproduces the
// real host's deferred evaluation: after a frame change, curve reads fail
// with curve.ErrNotSettled for a configured number of attempts, so pose
// capture succeeds only once evaluation has caught up.
type host struct {
	scene        *scene.Scene
	logger       *slog.Logger
	settleEvents int

	mu              sync.Mutex
	lastFrame       float64
	hasFrame        bool
	settleRemaining int
	// deferredRead marks that a capture already failed for the current
	// settle window. While set, frame changes do not re-arm the window;
	// otherwise continuous playback would starve every retry.
	deferredRead bool
}

func newHost(sc *scene.Scene, settleEvents int, logger *slog.Logger) *host {
	if settleEvents < 0 {
		settleEvents = 0
	}
	return &host{
		scene:        sc,
		logger:       logging.WithComponent(logger, "host"),
		settleEvents: settleEvents,
	}
}

// noteTimeChange arms the settle window when the frame actually moved.
func (h *host) noteTimeChange(frame float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hasFrame && frame == h.lastFrame {
		return
	}
	h.lastFrame = frame
	h.hasFrame = true
	if h.settleEvents > 0 && !h.deferredRead {
		h.settleRemaining = h.settleEvents
	}
}

func (h *host) CapturePose(ctx context.Context, rigID string, frame float64) (rig.Pose, error) {
	if err := ctx.Err(); err != nil {
		return rig.Pose{}, err
	}

	h.mu.Lock()
	if h.settleRemaining > 0 {
		h.settleRemaining--
		h.deferredRead = true
		h.mu.Unlock()
		return rig.Pose{}, fmt.Errorf("frame %v: %w", frame, curve.ErrNotSettled)
	}
	h.deferredRead = false
	h.mu.Unlock()

	r, ok := h.scene.Rig(rigID)
	if !ok {
		return rig.Pose{}, fmt.Errorf("unknown rig %q", rigID)
	}
	return h.scene.Sampler.Sample(r, frame)
}

func (h *host) ApplyPose(ctx context.Context, rigID string, pose rig.Pose) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r, ok := h.scene.Rig(rigID)
	if !ok {
		return fmt.Errorf("unknown rig %q", rigID)
	}

	result := r.ApplyPose(pose)
	h.logger.Debug("pose applied",
		logging.Rig(rigID),
		logging.Frame(pose.Frame),
		logging.Int("joints", result.AppliedJoints),
		logging.Int("values", result.AppliedValues),
	)
	if len(result.MissingJoints) > 0 {
		h.logger.Warn("pose joints absent from target rig",
			logging.Rig(rigID),
			logging.Any("joints", result.MissingJoints),
		)
	}
	return nil
}

// Activate shows the named rig and hides every other variant, mirroring the
// host behavior of unloading all references except the active one.
func (h *host) Activate(ctx context.Context, rigID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, ok := h.scene.Rig(rigID)
	if !ok {
		return fmt.Errorf("unknown rig %q", rigID)
	}

	for _, id := range h.scene.RigIDs() {
		r, _ := h.scene.Rig(id)
		if id == rigID {
			continue
		}
		if r.Visible() {
			h.logger.Info("rig hidden", logging.Rig(id), logging.String("namespace", r.Namespace()))
		}
		r.SetVisible(false)
	}
	target.SetVisible(true)
	h.logger.Info("rig shown", logging.Rig(rigID), logging.String("namespace", target.Namespace()))
	return nil
}
