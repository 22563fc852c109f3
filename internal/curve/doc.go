// Package curve stores keyframe animation curves and samples rig poses from
// them.
//
// Curves target one channel of one joint and hold frame-sorted keys with
// step or linear interpolation. Evaluation clamps outside the key range. The
// Sampler builds a full pose for a rig at a frame by starting from rest
// values and overriding every keyed channel; rigs without authored curves
// fall back to their current channel values, which covers variants that were
// never baked.
package curve
