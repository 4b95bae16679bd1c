package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	tokens, err := NewTokens("test-secret", "dev")
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	tok, err := tokens.Sign("user-1", "a@example.com", "Ada")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	claims, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "a@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerifyRejects(t *testing.T) {
	tokens, _ := NewTokens("test-secret", "dev")
	other, _ := NewTokens("other-secret", "dev")
	tok, _ := other.Sign("user-1", "", "")

	if _, err := tokens.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for wrong secret, got %v", err)
	}
	if _, err := tokens.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for garbage, got %v", err)
	}

	issued := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issued }
	old, _ := tokens.Sign("user-1", "", "")
	tokens.now = func() time.Time { return issued.Add(48 * time.Hour) }
	if _, err := tokens.Verify(old); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
}

func TestNewTokensRequiresSecretInProduction(t *testing.T) {
	if _, err := NewTokens("", "production"); err == nil {
		t.Fatal("expected error without secret in production")
	}
	if _, err := NewTokens("", "dev"); err != nil {
		t.Fatalf("dev should fall back to a default secret: %v", err)
	}
}
