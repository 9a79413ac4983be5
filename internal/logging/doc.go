// Package logging assembles structured slog loggers and formatting helpers used
// across voiceswitch components.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so operations automatically tag
// log lines with the invocation's correlation ID and target language code.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
