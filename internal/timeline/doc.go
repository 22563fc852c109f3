// Package timeline provides the playback clock that stands in for the host
// application's timeline.
//
// The Clock delivers time-change notifications to registered listeners on
// scrubs and during playback, clamped to the scene frame range. It is the
// only event source in the system; listeners must tolerate repeated
// notifications at the same frame because the host fires redundant refresh
// events around scrubbing.
package timeline
