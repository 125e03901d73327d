package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("test-secret-key-32-bytes-long!!!")

func TestTokenService_IssueVerifyRoundtrip(t *testing.T) {
	t.Parallel()

	svc := NewTokenService(testSecret, time.Hour)

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	userID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify returned user %d, want 42", userID)
	}
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	// Negative ttl: expiry is already in the past at issuance.
	svc := NewTokenService(testSecret, -time.Minute)

	token, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify on expired token = %v, want ErrTokenExpired", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService(testSecret, time.Hour)
	verifier := NewTokenService([]byte("a completely different secret!!"), time.Hour)

	token, err := issuer.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrTokenBadSignature) {
		t.Errorf("Verify with wrong secret = %v, want ErrTokenBadSignature", err)
	}
}

func TestTokenService_TamperedPayload(t *testing.T) {
	t.Parallel()

	svc := NewTokenService(testSecret, time.Hour)

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Flip a byte in the claims segment. The signature no longer
	// matches, so this must fail as tampering, never resolve to a
	// different user.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("JWT should have 3 segments, got %d", len(parts))
	}
	payload := []byte(parts[1])
	if payload[3] == 'A' {
		payload[3] = 'B'
	} else {
		payload[3] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	userID, err := svc.Verify(tampered)
	if err == nil {
		t.Fatalf("Verify accepted tampered token as user %d", userID)
	}
	if !errors.Is(err, ErrTokenBadSignature) && !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("Verify on tampered token = %v, want bad signature or malformed", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService(testSecret, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt-at-all"},
		{"two segments", "aaaa.bbbb"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Verify(tt.token)
			if !errors.Is(err, ErrTokenMalformed) {
				t.Errorf("Verify(%q) = %v, want ErrTokenMalformed", tt.token, err)
			}
		})
	}
}

func TestTokenService_ExpiryEmbeddedAtIssuance(t *testing.T) {
	t.Parallel()

	svc := NewTokenService(testSecret, 50*time.Millisecond)

	token, err := svc.Issue(1)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("Token should be valid immediately after issuance: %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify after ttl = %v, want ErrTokenExpired", err)
	}
}
