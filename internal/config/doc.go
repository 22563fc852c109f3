// Package config loads and validates the mutablerig configuration file.
//
// Configuration lives in TOML at ~/.config/mutablerig/config.toml (or a
// project-local mutablerig.toml). Load applies defaults, expands ~ in paths,
// normalizes values, and validates before anything else runs, so the rest of
// the system can trust the Config it receives.
package config
