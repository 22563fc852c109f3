// Package rig models rig variant hierarchies and pose snapshots.
//
// A Rig is a set of named joints with parent links, rest values, and current
// channel values. Poses are captured from and applied to rigs by channel
// name, tolerating joints that exist on only one side of a transfer; the
// mismatch counts are reported so callers can log them. Visibility is an
// explicit flag on the rig rather than scene-graph state, which keeps switch
// logic host-agnostic and testable.
package rig
