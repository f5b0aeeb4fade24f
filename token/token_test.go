package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("test-secret-key-for-token-signing-at-least-32-bytes")

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewService(testSecret, time.Hour)

	tok, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	identity, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if identity != "alice" {
		t.Errorf("Expected identity alice, got %s", identity)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewService(testSecret, -time.Minute)

	tok, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := svc.Verify(tok); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	svc := NewService(testSecret, time.Hour)

	tok, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Flip the last character of the signature segment.
	last := tok[len(tok)-1]
	replacement := byte('A')
	if last == replacement {
		replacement = 'B'
	}
	tampered := tok[:len(tok)-1] + string(replacement)

	if _, err := svc.Verify(tampered); err == nil {
		t.Fatal("Expected tampered token to be rejected")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := NewService(testSecret, time.Hour)
	other := NewService([]byte("another-secret-key-also-at-least-32-bytes-long!!"), time.Hour)

	tok, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := other.Verify(tok); err == nil {
		t.Fatal("Expected verification with a different secret to fail")
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := NewService(testSecret, time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c", strings.Repeat("x", 100)} {
		if _, err := svc.Verify(tok); err == nil {
			t.Errorf("Expected malformed token %q to be rejected", tok)
		}
	}
}
