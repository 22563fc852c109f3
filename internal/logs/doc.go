// Package logs reads session log files for CLI display.
//
// The session process keeps a stable pointer file in the log directory
// naming the current run's log. This package tails that file with
// bounded memory usage and supports incremental reads from an offset so
// `mutablerig logs --follow` can stream output without holding the file
// open between polls.
package logs
