// Package config loads, normalizes, and validates voiceswitch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and applies VOICESWITCH_* environment
// overrides. The Config type centralizes where snapshots live, how the Steam
// install is located, and how logs are written.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
