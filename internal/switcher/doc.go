// Package switcher decides which rig variant drives the character at any
// timeline position and transfers pose state across variants when that
// changes.
//
// The Controller is driven entirely by time-change notifications from the
// host: it resolves the definition table at the new frame, and when the
// resolved rig differs from the active one it captures the outgoing rig's
// pose, applies it to the incoming rig, and activates it. Re-invocation at
// the same frame is a no-op, and an unreadable source pose defers the switch
// to the next event instead of failing, because the host may deliver events
// before its own evaluation has settled.
package switcher
