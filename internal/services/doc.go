// Package services defines shared utilities consumed by the voice-pack
// components and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and language codes
//     for logging.
//   - Structured error markers plus the Wrap helper that let callers classify
//     failures (not found, incomplete capture, version mismatch, I/O, link)
//     with errors.Is regardless of the underlying OS error.
//
// Use these helpers when adding new operations so failures stay typed all the
// way up to the presentation layer.
package services
