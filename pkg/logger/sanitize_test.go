package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestSanitizeFields_MasksSensitiveKeys(t *testing.T) {
	fields := []zap.Field{
		zap.String("method", "POST"),
		zap.String("authorization", "Bearer abc"),
		zap.String("X-API-Token", "xyz"),
		zap.Int("status", 200),
	}

	sanitized := SanitizeFields(fields)

	if got := sanitized[1].String; got != "***" {
		t.Fatalf("authorization: expected masked value, got %q", got)
	}
	if got := sanitized[2].String; got != "***" {
		t.Fatalf("X-API-Token: expected masked value, got %q", got)
	}
	if got := sanitized[0].String; got != "POST" {
		t.Fatalf("method: expected untouched value, got %q", got)
	}
	if got := sanitized[3].Integer; got != 200 {
		t.Fatalf("status: expected untouched value, got %d", got)
	}
}

func TestSanitizeFields_DoesNotMutateInput(t *testing.T) {
	fields := []zap.Field{zap.String("password", "hunter2")}

	SanitizeFields(fields)

	if fields[0].String != "hunter2" {
		t.Fatalf("input slice was mutated: %q", fields[0].String)
	}
}

func TestSanitizeFields_CleanFieldsPassThrough(t *testing.T) {
	fields := []zap.Field{
		zap.String("path", "/health"),
		zap.Int64("latency_ms", 3),
	}

	sanitized := SanitizeFields(fields)

	if len(sanitized) != len(fields) {
		t.Fatalf("expected %d fields, got %d", len(fields), len(sanitized))
	}
	for i := range fields {
		if sanitized[i] != fields[i] {
			t.Fatalf("field %d changed: %+v", i, sanitized[i])
		}
	}
}

func TestIsSensitiveKey(t *testing.T) {
	cases := map[string]bool{
		"password":      true,
		"jwt_secret":    true,
		"Authorization": true,
		"refresh-token": true,
		"method":        false,
		"client_ip":     false,
		"":              false,
	}

	for key, want := range cases {
		if got := isSensitiveKey(key); got != want {
			t.Errorf("isSensitiveKey(%q) = %v, want %v", key, got, want)
		}
	}
}
