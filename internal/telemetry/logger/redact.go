package logger

import (
	"log/slog"
	"strconv"
	"strings"
)

// Sensitive key patterns that should be redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"auth",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// MaxValueLen bounds logged string attributes; stored values can be large.
const MaxValueLen = 128

// redactSensitive masks attributes whose key suggests a secret and
// truncates long string values.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		strVal := a.Value.String()
		if strVal != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if len(strVal) > MaxValueLen {
			return slog.String(a.Key, Truncate(strVal))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}
	return a
}

// Truncate shortens s to MaxValueLen bytes and notes the original size.
func Truncate(s string) string {
	if len(s) <= MaxValueLen {
		return s
	}
	return s[:MaxValueLen] + "...(" + strconv.Itoa(len(s)) + " bytes)"
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
