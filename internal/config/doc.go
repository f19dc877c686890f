// Package config loads, normalizes, and validates ffkit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides for the
// ffmpeg and ffprobe binaries. Always obtain settings through this package so
// downstream code receives trimmed binary names and clear validation errors.
package config
