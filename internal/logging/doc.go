// Package logging assembles the structured slog loggers used across
// mutablerig components.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and defines the standardized attribute keys (component, rig,
// frame) so the session, timeline, and switcher emit log lines with the same
// shape. A no-op logger is provided for tests and wiring code that cannot
// fail.
package logging
