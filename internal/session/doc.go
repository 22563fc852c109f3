// Package session coordinates a running scene: the playback clock, the rig
// switch controller, the transfer journal, and the simulated host they all
// talk to. It enforces single-instance execution through a lock file and is
// the surface the IPC layer exposes to clients.
package session
