package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	s := &Service{issuer: "cryptocube", secret: []byte("test-secret"), ttl: time.Hour}

	token, err := s.signToken("user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := s.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("expected user-123, got %q", userID)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	signer := &Service{issuer: "cryptocube", secret: []byte("secret-a"), ttl: time.Hour}
	verifier := &Service{issuer: "cryptocube", secret: []byte("secret-b"), ttl: time.Hour}

	token, err := signer.signToken("user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Errorf("expected error for wrong secret")
	}
}

func TestParseTokenRejectsWrongIssuer(t *testing.T) {
	signer := &Service{issuer: "someone-else", secret: []byte("test-secret"), ttl: time.Hour}
	verifier := &Service{issuer: "cryptocube", secret: []byte("test-secret"), ttl: time.Hour}

	token, err := signer.signToken("user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Errorf("expected error for wrong issuer")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	s := &Service{issuer: "cryptocube", secret: []byte("test-secret"), ttl: -time.Minute}

	token, err := s.signToken("user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.ParseToken(token); err == nil {
		t.Errorf("expected error for expired token")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	s := &Service{issuer: "cryptocube", secret: []byte("test-secret"), ttl: time.Hour}
	if _, err := s.ParseToken("not.a.token"); err == nil {
		t.Errorf("expected error for malformed token")
	}
}
