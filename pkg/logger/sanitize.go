package logger

import (
	"strings"

	"go.uber.org/zap"
)

var sensitiveTokens = []string{
	"password",
	"token",
	"secret",
	"authorization",
}

// SanitizeFields masks credential-bearing values before they reach a sink.
// Fields are matched by key; request logging only ever emits flat fields.
func SanitizeFields(fields []zap.Field) []zap.Field {
	var sanitized []zap.Field
	for i, field := range fields {
		if !isSensitiveKey(field.Key) {
			continue
		}
		if sanitized == nil {
			sanitized = make([]zap.Field, len(fields))
			copy(sanitized, fields)
		}
		sanitized[i] = zap.String(field.Key, "***")
	}
	if sanitized == nil {
		return fields
	}
	return sanitized
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if normalized == "" {
		return false
	}

	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, "_", "")

	for _, token := range sensitiveTokens {
		if strings.Contains(normalized, token) {
			return true
		}
	}

	return false
}
