// Package journal persists an audit trail of completed rig switches in a
// SQLite database.
//
// Each completed switch is recorded as a transfer row: the boundary frame,
// the source and destination rigs, and optionally the full pose snapshot
// that was carried across. The journal is append-only during a session;
// rows are only removed through an explicit clear.
package journal
