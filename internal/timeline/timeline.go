package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"mutablerig/internal/logging"
)

// TimeChangedFunc is invoked for every delivered time-change event.
type TimeChangedFunc func(ctx context.Context, frame float64) error

// Settings configures a Clock.
type Settings struct {
	FrameRate  float64
	StartFrame float64
	EndFrame   float64

	// StepInterval overrides the tick period derived from FrameRate.
	// Tests use this to play without real-time waits.
	StepInterval time.Duration
}

// Clock is the playback clock. All event delivery happens on the goroutine
// calling Scrub or Play; listeners never run concurrently with each other.
type Clock struct {
	settings Settings
	logger   *slog.Logger

	mu        sync.Mutex
	current   float64
	listeners []TimeChangedFunc
	playing   bool
}

// New builds a clock positioned at the start frame.
func New(settings Settings, logger *slog.Logger) (*Clock, error) {
	if settings.FrameRate <= 0 {
		return nil, errors.New("timeline frame rate must be positive")
	}
	if settings.EndFrame < settings.StartFrame {
		return nil, fmt.Errorf("timeline end frame %v precedes start frame %v",
			settings.EndFrame, settings.StartFrame)
	}
	return &Clock{
		settings: settings,
		logger:   logging.WithComponent(logger, "timeline"),
		current:  settings.StartFrame,
	}, nil
}

// AddListener registers a time-change listener. Listeners added after events
// began do not receive a catch-up notification.
func (c *Clock) AddListener(fn TimeChangedFunc) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Current returns the current frame.
func (c *Clock) Current() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Range returns the playable frame range.
func (c *Clock) Range() (start, end float64) {
	return c.settings.StartFrame, c.settings.EndFrame
}

// Playing reports whether a Play call is in progress.
func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Scrub jumps to a frame, clamped to the range, and notifies listeners.
// Scrubbing to the current frame still notifies: the host fires refresh
// events even for no-op moves, and listeners are required to cope.
func (c *Clock) Scrub(ctx context.Context, frame float64) error {
	clamped := c.clamp(frame)
	c.mu.Lock()
	c.current = clamped
	c.mu.Unlock()

	c.logger.Debug("scrub", logging.Frame(clamped))
	return c.notify(ctx, clamped)
}

// Play steps whole frames from `from` to `to` at the frame rate, notifying
// listeners on every step. It blocks until the range completes or the
// context is canceled. Reverse playback steps backward.
func (c *Clock) Play(ctx context.Context, from, to float64) error {
	from = c.clamp(from)
	to = c.clamp(to)

	c.mu.Lock()
	if c.playing {
		c.mu.Unlock()
		return errors.New("timeline already playing")
	}
	c.playing = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.playing = false
		c.mu.Unlock()
	}()

	interval := c.settings.StepInterval
	if interval <= 0 {
		interval = time.Duration(float64(time.Second) / c.settings.FrameRate)
	}

	step := 1.0
	if to < from {
		step = -1.0
	}

	c.logger.Info("playback started",
		logging.Float64("from", from),
		logging.Float64("to", to),
		logging.Float64("fps", c.settings.FrameRate),
		logging.Bool("reverse", step < 0),
	)

	started := time.Now()
	frame := from
	for {
		c.mu.Lock()
		c.current = frame
		c.mu.Unlock()

		if err := c.notify(ctx, frame); err != nil {
			return err
		}

		if frame == to {
			break
		}
		next := frame + step
		if (step > 0 && next > to) || (step < 0 && next < to) {
			next = to
		}
		frame = next

		select {
		case <-ctx.Done():
			c.logger.Info("playback interrupted", logging.Frame(frame))
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	c.logger.Info("playback finished",
		logging.Frame(to),
		logging.Duration("elapsed", time.Since(started)))
	return nil
}

func (c *Clock) clamp(frame float64) float64 {
	if math.IsNaN(frame) {
		return c.settings.StartFrame
	}
	return math.Min(math.Max(frame, c.settings.StartFrame), c.settings.EndFrame)
}

func (c *Clock) notify(ctx context.Context, frame float64) error {
	c.mu.Lock()
	listeners := append([]TimeChangedFunc(nil), c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		if err := fn(ctx, frame); err != nil {
			return err
		}
	}
	return nil
}
