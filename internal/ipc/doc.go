// Package ipc exposes a running session over JSON-RPC Unix sockets and
// ships the matching client used by the CLI.
//
// It owns socket lifecycle management, request/response DTOs, and
// conversions between session models and lightweight wire representations.
// The server embeds the session while the client decorates calls with a dial
// timeout so CLI commands fail fast when no session is running.
package ipc
