// Package config loads, normalizes, and validates clipforge configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and validates every detection threshold
// before any analysis starts. The Config type centralizes every knob the
// engine and CLI need; out-of-range thresholds fail fast at load time
// because they indicate caller misuse, not runtime noise.
package config
