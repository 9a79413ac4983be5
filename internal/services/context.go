package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	langCodeKey  contextKey = "lang_code"
)

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithLangCode annotates context with the language code an operation targets.
func WithLangCode(ctx context.Context, code string) context.Context {
	if code == "" {
		return ctx
	}
	return context.WithValue(ctx, langCodeKey, code)
}

// LangCodeFromContext returns the language code if present.
func LangCodeFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(langCodeKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
