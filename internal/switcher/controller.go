package switcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"mutablerig/internal/curve"
	"mutablerig/internal/logging"
	"mutablerig/internal/rig"
)

// Host is the surface the controller needs from the owning application. The
// scene graph, curve storage, and visibility toggles all stay behind it so
// the switch logic is host-agnostic.
type Host interface {
	// CapturePose reads a rig's pose at a frame. Returns curve.ErrNotSettled
	// when the host has not finished evaluating there yet.
	CapturePose(ctx context.Context, rigID string, frame float64) (rig.Pose, error)
	// ApplyPose writes pose values onto a rig.
	ApplyPose(ctx context.Context, rigID string, pose rig.Pose) error
	// Activate shows the named rig and hides every other variant.
	Activate(ctx context.Context, rigID string) error
}

// Transfer describes one executed pose transfer.
type Transfer struct {
	Frame   float64
	FromRig string
	ToRig   string
	Pose    rig.Pose
}

// Recorder persists executed transfers. Recording failures are logged, not
// fatal: the journal is an audit trail, never switch state.
type Recorder interface {
	RecordTransfer(ctx context.Context, transfer Transfer) error
}

// PendingSwitch describes a switch that is waiting for host evaluation.
type PendingSwitch struct {
	ToRig     string
	Frame     float64
	Deferrals int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logging.WithComponent(logger, "switcher")
		}
	}
}

// WithRecorder attaches a transfer recorder.
func WithRecorder(recorder Recorder) Option {
	return func(c *Controller) { c.recorder = recorder }
}

// WithMaxDeferrals bounds consecutive deferrals before a pending switch is
// reported as an error.
func WithMaxDeferrals(limit int) Option {
	return func(c *Controller) {
		if limit > 0 {
			c.maxDeferrals = limit
		}
	}
}

// Controller owns the single piece of switch state: the identifier of the
// rig currently driving the character.
type Controller struct {
	table *Table
	host  Host

	logger       *slog.Logger
	recorder     Recorder
	maxDeferrals int

	// Host events can arrive from the UI loop and the IPC surface; the
	// mutex keeps a transfer atomic across both.
	mu      sync.Mutex
	active  string
	pending *PendingSwitch
}

const defaultMaxDeferrals = 8

// New builds a controller and activates the definition resolved at
// startFrame without transferring any pose; there is no outgoing rig yet.
func New(ctx context.Context, table *Table, host Host, startFrame float64, opts ...Option) (*Controller, error) {
	if table == nil {
		return nil, errors.New("switcher requires a definition table")
	}
	if host == nil {
		return nil, errors.New("switcher requires a host")
	}
	c := &Controller{
		table:        table,
		host:         host,
		logger:       logging.NewNop(),
		maxDeferrals: defaultMaxDeferrals,
	}
	for _, opt := range opts {
		opt(c)
	}

	initial := table.Resolve(startFrame)
	if err := host.Activate(ctx, initial.RigID); err != nil {
		return nil, fmt.Errorf("activate initial rig %s: %w", initial.RigID, err)
	}
	c.active = initial.RigID
	c.logger.Info("initial rig activated", logging.Rig(initial.RigID), logging.Frame(startFrame))
	return c, nil
}

// Active returns the identifier of the rig currently driving the character.
func (c *Controller) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Pending returns the deferred switch, if any.
func (c *Controller) Pending() (PendingSwitch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return PendingSwitch{}, false
	}
	return *c.pending, true
}

// OnTimeChanged is the host's time-change notification. Safe to invoke any
// number of times per logical frame change; only boundary crossings do work.
func (c *Controller) OnTimeChanged(ctx context.Context, frame float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.table.Resolve(frame)
	if target.RigID == c.active {
		if c.pending != nil {
			// Scrubbed back before completing a deferred switch; the
			// resolved rig is active again, so nothing remains to do.
			c.logger.Info("pending switch obsoleted by scrub",
				logging.Rig(c.pending.ToRig), logging.Frame(frame))
			c.pending = nil
		}
		c.logger.Info("rig already active, nothing to do",
			logging.Rig(c.active), logging.Frame(frame))
		return nil
	}

	pose, err := c.host.CapturePose(ctx, c.active, frame)
	if err != nil {
		if errors.Is(err, curve.ErrNotSettled) {
			return c.deferSwitch(target.RigID, frame)
		}
		return fmt.Errorf("capture pose from %s at frame %v: %w", c.active, frame, err)
	}

	if err := c.host.ApplyPose(ctx, target.RigID, pose); err != nil {
		return fmt.Errorf("apply pose to %s: %w", target.RigID, err)
	}
	if err := c.host.Activate(ctx, target.RigID); err != nil {
		return fmt.Errorf("activate rig %s: %w", target.RigID, err)
	}

	transfer := Transfer{Frame: frame, FromRig: c.active, ToRig: target.RigID, Pose: pose}
	c.logger.Info("switched rig",
		logging.String("from", transfer.FromRig),
		logging.String("to", transfer.ToRig),
		logging.Frame(frame),
		logging.String(logging.FieldEventType, "rig_switch"),
	)
	c.active = target.RigID
	c.pending = nil

	if c.recorder != nil {
		if err := c.recorder.RecordTransfer(ctx, transfer); err != nil {
			c.logger.Warn("transfer journal write failed",
				logging.Error(err),
				logging.String(logging.FieldEventType, "journal_write_failed"),
			)
		}
	}
	return nil
}

// deferSwitch notes that a switch is due but the source pose was unreadable.
// The switch retries on the next event; exceeding the deferral budget means
// the host never settled and is worth surfacing.
func (c *Controller) deferSwitch(toRig string, frame float64) error {
	if c.pending == nil || c.pending.ToRig != toRig {
		c.pending = &PendingSwitch{ToRig: toRig, Frame: frame}
	}
	c.pending.Deferrals++
	c.pending.Frame = frame

	if c.pending.Deferrals > c.maxDeferrals {
		deferrals := c.pending.Deferrals
		c.pending = nil
		return fmt.Errorf("switch to %s deferred %d times without settling", toRig, deferrals)
	}

	c.logger.Info("switch deferred until host evaluation settles",
		logging.Rig(toRig),
		logging.Frame(frame),
		logging.Int("deferrals", c.pending.Deferrals),
		logging.String(logging.FieldEventType, "rig_switch_deferred"),
	)
	return nil
}
