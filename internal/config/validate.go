package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTimeline(); err != nil {
		return err
	}
	if err := c.validateSwitcher(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTimeline() error {
	if c.Timeline.FrameRate <= 0 {
		return errors.New("timeline.frame_rate must be positive")
	}
	if c.Timeline.EndFrame < c.Timeline.StartFrame {
		return fmt.Errorf("timeline.end_frame (%v) must not precede timeline.start_frame (%v)",
			c.Timeline.EndFrame, c.Timeline.StartFrame)
	}
	return nil
}

func (c *Config) validateSwitcher() error {
	if c.Switcher.MaxDeferrals < 1 {
		return errors.New("switcher.max_deferrals must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
