package jwtutil

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	secret := []byte("test-secret")
	claims := NewClaims("ana@example.com", time.Hour)

	token, err := GenerateAccessToken(claims, secret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	parsed, err := ParseAccessToken(token, secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if parsed.Subject != "ana@example.com" {
		t.Fatalf("expected subject ana@example.com, got %q", parsed.Subject)
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	claims := NewClaims("ana@example.com", time.Hour)
	token, err := GenerateAccessToken(claims, []byte("secret-a"))
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := ParseAccessToken(token, []byte("secret-b")); err == nil {
		t.Fatal("expected parse to fail with a different secret")
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	secret := []byte("test-secret")
	claims := NewClaims("ana@example.com", -time.Minute)
	token, err := GenerateAccessToken(claims, secret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, err = ParseAccessToken(token, secret)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
