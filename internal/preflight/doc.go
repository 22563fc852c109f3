// Package preflight provides readiness checks for the filesystem paths and
// scene data a session depends on.
//
// These checks run in two contexts:
//   - Session startup calls RunAll before acquiring the lock. If any check
//     fails, the session refuses to start instead of failing mid-scrub.
//   - The CLI "mutablerig status" command displays the same results when no
//     session is running so problems are visible before launch.
package preflight
