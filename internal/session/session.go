package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"mutablerig/internal/config"
	"mutablerig/internal/journal"
	"mutablerig/internal/logging"
	"mutablerig/internal/scene"
	"mutablerig/internal/switcher"
	"mutablerig/internal/timeline"
)

// Session owns one loaded scene and everything observing it.
type Session struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *journal.Store

	scene *scene.Scene
	clock *timeline.Clock
	sim   *host
	ctrl  *switcher.Controller

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc

	mu         sync.Mutex
	playCancel context.CancelFunc
	listening  bool
	lastError  string
}

// Status is a point-in-time snapshot of session state.
type Status struct {
	Running      bool
	PID          int
	SceneName    string
	ScenePath    string
	StartFrame   float64
	EndFrame     float64
	CurrentFrame float64
	Playing      bool

	ActiveRig      string
	ActiveRigTitle string
	PendingRig     string
	PendingFrame   float64
	Deferrals      int

	TransferCount int
	JournalPath   string
	LockPath      string
	LastError     string
}

// New loads the configured scene and assembles a session around it. The
// session is idle until Start.
func New(cfg *config.Config, store *journal.Store, logger *slog.Logger) (*Session, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("session requires config and journal store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	sc, err := scene.Load(cfg.Paths.ScenePath)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}

	settings := timeline.Settings{
		FrameRate:  cfg.Timeline.FrameRate,
		StartFrame: cfg.Timeline.StartFrame,
		EndFrame:   cfg.Timeline.EndFrame,
	}
	// Scene timeline values override config defaults when authored.
	if sc.Timeline.FrameRate > 0 {
		settings.FrameRate = sc.Timeline.FrameRate
	}
	if sc.Timeline.EndFrame > sc.Timeline.StartFrame {
		settings.StartFrame = sc.Timeline.StartFrame
		settings.EndFrame = sc.Timeline.EndFrame
	}

	clock, err := timeline.New(settings, logger)
	if err != nil {
		return nil, err
	}

	return &Session{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "session"),
		store:    store,
		scene:    sc,
		clock:    clock,
		sim:      newHost(sc, cfg.Timeline.SettleEvents, logger),
		lockPath: cfg.LockPath(),
		lock:     flock.New(cfg.LockPath()),
	}, nil
}

// Start acquires the session lock, activates the initial rig, and begins
// observing the timeline.
func (s *Session) Start(ctx context.Context) error {
	if s.running.Load() {
		return errors.New("session already running")
	}

	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another session already holds the lock")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	ctrl, err := switcher.New(s.ctx, s.scene.Table, s.sim, s.clock.Current(),
		switcher.WithLogger(s.logger),
		switcher.WithRecorder(s.store),
		switcher.WithMaxDeferrals(s.cfg.Switcher.MaxDeferrals),
	)
	if err != nil {
		_ = s.lock.Unlock()
		s.cancel()
		s.ctx = nil
		s.cancel = nil
		return err
	}
	s.ctrl = ctrl

	// Register once; the listener survives stop/start cycles.
	s.mu.Lock()
	if !s.listening {
		s.clock.AddListener(s.onTimeChanged)
		s.listening = true
	}
	s.mu.Unlock()

	s.running.Store(true)
	s.logger.Info("session started",
		logging.String("scene", s.scene.Name),
		logging.Rig(ctrl.Active()),
		logging.String("lock", s.lockPath),
	)
	return nil
}

// Stop halts playback and releases the session lock.
func (s *Session) Stop() {
	if !s.running.Load() {
		return
	}

	s.StopPlayback()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release session lock", logging.Error(err))
	}
	s.ctx = nil
	s.running.Store(false)
	s.logger.Info("session stopped")
}

// Close stops the session and releases held resources.
func (s *Session) Close() error {
	s.Stop()
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// onTimeChanged is the clock listener: it advances the host's settle state,
// then hands the event to the switch controller.
func (s *Session) onTimeChanged(ctx context.Context, frame float64) error {
	s.sim.noteTimeChange(frame)
	if err := s.ctrl.OnTimeChanged(ctx, frame); err != nil {
		s.setLastError(err)
		return err
	}
	return nil
}

// Scrub jumps the timeline to a frame and returns the clamped position.
func (s *Session) Scrub(ctx context.Context, frame float64) (float64, error) {
	if !s.running.Load() {
		return 0, errors.New("session is not running")
	}
	if err := s.clock.Scrub(ctx, frame); err != nil {
		return s.clock.Current(), err
	}
	return s.clock.Current(), nil
}

// Play starts asynchronous playback across a frame range. Only one playback
// may run at a time.
func (s *Session) Play(from, to float64) error {
	if !s.running.Load() {
		return errors.New("session is not running")
	}

	s.mu.Lock()
	if s.playCancel != nil {
		s.mu.Unlock()
		return errors.New("playback already in progress")
	}
	playCtx, cancel := context.WithCancel(s.ctx)
	s.playCancel = cancel
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.playCancel = nil
			s.mu.Unlock()
			cancel()
		}()
		if err := s.clock.Play(playCtx, from, to); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("playback failed", logging.Error(err))
			s.setLastError(err)
		}
	}()
	return nil
}

// StopPlayback cancels an in-progress playback. It reports whether one was
// running.
func (s *Session) StopPlayback() bool {
	s.mu.Lock()
	cancel := s.playCancel
	s.mu.Unlock()
	if cancel == nil {
		return false
	}
	cancel()
	return true
}

// ActiveRig returns the rig currently driving the character.
func (s *Session) ActiveRig() string {
	if s.ctrl == nil {
		return ""
	}
	return s.ctrl.Active()
}

// Scene returns the loaded scene.
func (s *Session) Scene() *scene.Scene {
	return s.scene
}

// Transfers returns journal entries, newest last.
func (s *Session) Transfers(ctx context.Context, limit int) ([]*journal.Entry, error) {
	return s.store.List(ctx, limit)
}

// ClearTransfers removes every journal entry.
func (s *Session) ClearTransfers(ctx context.Context) (int64, error) {
	return s.store.Clear(ctx)
}

// JournalHealth reports journal database diagnostics.
func (s *Session) JournalHealth(ctx context.Context) (journal.DatabaseHealth, error) {
	return s.store.CheckHealth(ctx)
}

// Status assembles the current session snapshot.
func (s *Session) Status(ctx context.Context) Status {
	start, end := s.clock.Range()
	status := Status{
		Running:      s.running.Load(),
		PID:          os.Getpid(),
		SceneName:    s.scene.Name,
		ScenePath:    s.scene.Path,
		StartFrame:   start,
		EndFrame:     end,
		CurrentFrame: s.clock.Current(),
		Playing:      s.clock.Playing(),
		JournalPath:  s.store.Path(),
		LockPath:     s.lockPath,
		LastError:    s.getLastError(),
	}
	if s.ctrl != nil {
		status.ActiveRig = s.ctrl.Active()
		if r, ok := s.scene.Rig(status.ActiveRig); ok {
			status.ActiveRigTitle = scene.DisplayTitle(r.Root())
		}
		if pending, ok := s.ctrl.Pending(); ok {
			status.PendingRig = pending.ToRig
			status.PendingFrame = pending.Frame
			status.Deferrals = pending.Deferrals
		}
	}
	if count, err := s.store.Count(ctx); err == nil {
		status.TransferCount = count
	}
	return status
}

func (s *Session) setLastError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *Session) getLastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
