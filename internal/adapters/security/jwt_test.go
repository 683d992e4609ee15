package security

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
	"github.com/studenthub/directory-service/internal/ports"
)

func TestJWTSignerRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralJWTSigner("test-key")
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	claims := ports.SessionClaims{
		UserID:    uuid.New(),
		Name:      "Jane Doe",
		Role:      domain.RoleStudent,
		SessionID: uuid.New(),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}

	token, err := signer.Sign(claims)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parsed, err := signer.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.UserID != claims.UserID || parsed.SessionID != claims.SessionID {
		t.Fatalf("identity claims did not round-trip: %+v", parsed)
	}
	if parsed.Role != domain.RoleStudent || parsed.Name != "Jane Doe" {
		t.Fatalf("unexpected claims %+v", parsed)
	}
	if !parsed.ExpiresAt.Equal(claims.ExpiresAt) {
		t.Fatalf("expiry mismatch: %v vs %v", parsed.ExpiresAt, claims.ExpiresAt)
	}
}

func TestJWTSignerRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralJWTSigner("test-key")
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	// Beyond the 30s validation leeway.
	now := time.Now().UTC()
	token, err := signer.Sign(ports.SessionClaims{
		UserID:    uuid.New(),
		Role:      domain.RoleStudent,
		SessionID: uuid.New(),
		IssuedAt:  now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := signer.ParseAndValidate(token); err == nil {
		t.Fatalf("expired token was accepted")
	}
}

func TestJWTSignerRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	signerA, _ := NewEphemeralJWTSigner("key-a")
	signerB, _ := NewEphemeralJWTSigner("key-b")

	now := time.Now().UTC()
	token, err := signerA.Sign(ports.SessionClaims{
		UserID:    uuid.New(),
		Role:      domain.RoleAdmin,
		SessionID: uuid.New(),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := signerB.ParseAndValidate(token); err == nil {
		t.Fatalf("token signed with a different key was accepted")
	}
}

func TestJWTSignerRejectsTampering(t *testing.T) {
	t.Parallel()

	signer, _ := NewEphemeralJWTSigner("test-key")
	now := time.Now().UTC()
	token, err := signer.Sign(ports.SessionClaims{
		UserID:    uuid.New(),
		Role:      domain.RoleStudent,
		SessionID: uuid.New(),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := signer.ParseAndValidate(tampered); err == nil {
		t.Fatalf("tampered token was accepted")
	}
}
