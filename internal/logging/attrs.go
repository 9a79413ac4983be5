package logging

import (
	"context"
	"log/slog"
)

type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Event tags a line with its event_type.
func Event(eventType string) Attr { return slog.String(FieldEventType, eventType) }

// Hint tells the operator what to do about a warning or failure.
func Hint(text string) Attr { return slog.String(FieldErrorHint, text) }

// Impact states what a warning means for the voice files on disk.
func Impact(text string) Attr { return slog.String(FieldImpact, text) }

// Counts groups the folder and control-file tallies of a capture, activation,
// or deactivation under "counts".
func Counts(folders, files int) Attr {
	return slog.Group("counts", slog.Int("folders", folders), slog.Int("files", files))
}

// BuildIDs records the snapshot and installed build identifiers side by side.
func BuildIDs(snapshot, installed string) Attr {
	return slog.Group("build", slog.String("snapshot", snapshot), slog.String("installed", installed))
}

// Args converts attrs to the variadic form slog methods accept.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with component. A nil logger discards.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

func hasKey(attrs []Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// WarnWithContext logs a warning that always carries event_type, error_hint,
// and impact. Missing hint and impact fall back to the snapshot-safe defaults:
// nothing in the game directory or backup root was left half changed.
func WarnWithContext(ctx context.Context, logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	if !hasKey(attrs, FieldEventType) {
		attrs = append(attrs, Event(eventType))
	}
	if !hasKey(attrs, FieldErrorHint) {
		attrs = append(attrs, Hint("see "+LogFileName+" for the preceding steps"))
	}
	if !hasKey(attrs, FieldImpact) {
		attrs = append(attrs, Impact("voice files were left as they were"))
	}
	WithContext(ctx, logger).Warn(msg, Args(attrs...)...)
}
