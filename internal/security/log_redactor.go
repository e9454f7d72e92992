// Package security keeps provider credentials out of log output.
package security

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// RedactedPlaceholder replaces sensitive data in log output.
const RedactedPlaceholder = "[REDACTED]"

// minSecretLength guards against redacting every occurrence of a trivially
// short value such as "a".
const minSecretLength = 6

// sensitivePatterns contains regex patterns for common credential formats.
var sensitivePatterns = []*regexp.Regexp{
	// Bearer tokens in header dumps or error strings
	regexp.MustCompile(`Bearer\s+[a-zA-Z0-9._-]{8,}`),
	// Retell keys: key_...
	regexp.MustCompile(`key_[a-zA-Z0-9]{16,}`),
	// Generic long alphanumeric strings that look like keys (40+ chars)
	regexp.MustCompile(`[a-zA-Z0-9_-]{40,}`),
}

// Redact scans a string for sensitive patterns and replaces them.
// This is the primary function for sanitizing log output.
func Redact(s string) string {
	result := s
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedPlaceholder)
	}
	return result
}

// RedactedHandler wraps an slog.Handler and redacts sensitive data from log records.
type RedactedHandler struct {
	inner   slog.Handler
	secrets []string
}

// NewRedactedHandler creates a new handler that wraps an existing handler
// and redacts sensitive data from all log output. Every value in secrets is
// replaced verbatim in addition to the pattern-based redaction; Vapi keys are
// plain UUIDs and cannot be told apart from request IDs by shape alone.
func NewRedactedHandler(inner slog.Handler, secrets ...string) *RedactedHandler {
	kept := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if len(s) >= minSecretLength {
			kept = append(kept, s)
		}
	}
	return &RedactedHandler{inner: inner, secrets: kept}
}

// Enabled reports whether the handler handles records at the given level.
func (h *RedactedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle processes a log record, redacting sensitive data.
func (h *RedactedHandler) Handle(ctx context.Context, r slog.Record) error {
	redacted := slog.NewRecord(r.Time, r.Level, h.redact(r.Message), r.PC)

	r.Attrs(func(a slog.Attr) bool {
		redacted.AddAttrs(h.redactAttr(a))
		return true
	})

	return h.inner.Handle(ctx, redacted)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *RedactedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.redactAttr(a)
	}
	return &RedactedHandler{inner: h.inner.WithAttrs(redacted), secrets: h.secrets}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactedHandler) WithGroup(name string) slog.Handler {
	return &RedactedHandler{inner: h.inner.WithGroup(name), secrets: h.secrets}
}

func (h *RedactedHandler) redact(s string) string {
	for _, secret := range h.secrets {
		s = strings.ReplaceAll(s, secret, RedactedPlaceholder)
	}
	return Redact(s)
}

// redactAttr redacts sensitive data from a single attribute.
func (h *RedactedHandler) redactAttr(a slog.Attr) slog.Attr {
	// Check for known sensitive keys
	if isSensitiveKey(strings.ToLower(a.Key)) {
		return slog.String(a.Key, RedactedPlaceholder)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.redact(a.Value.String()))
	case slog.KindGroup:
		group := a.Value.Group()
		redacted := make([]any, len(group))
		for i, ga := range group {
			redacted[i] = h.redactAttr(ga)
		}
		return slog.Group(a.Key, redacted...)
	case slog.KindAny:
		switch v := a.Value.Any().(type) {
		case error:
			return slog.String(a.Key, h.redact(v.Error()))
		case []string:
			redacted := make([]string, len(v))
			for i, s := range v {
				redacted[i] = h.redact(s)
			}
			return slog.Any(a.Key, redacted)
		}
	}

	return a
}

// isSensitiveKey checks if an attribute key is known to contain sensitive data.
func isSensitiveKey(key string) bool {
	sensitiveKeys := []string{
		"authorization",
		"api_key",
		"apikey",
		"api-key",
		"secret",
		"password",
		"token",
		"bearer",
		"credential",
	}

	for _, k := range sensitiveKeys {
		if strings.Contains(key, k) {
			return true
		}
	}
	return false
}
