// Package token issues and verifies the signed session tokens that prove
// identity without a server-side lookup.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	"vidserve/models"
)

const issuer = "vidserve"

var (
	// ErrTokenInvalid covers malformed structure and bad signatures.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when the token is past its expiry.
	// Callers treat both errors identically: no identity.
	ErrTokenExpired = errors.New("token has expired")
)

// Service signs and verifies session tokens with a process-wide HMAC secret.
// Verification is a pure computation; a Service is safe for concurrent use.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService returns a token service with the given signing secret and
// validity window.
func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// TTL returns the validity window tokens are issued with.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed token for identity, valid from now for the
// configured window.
func (s *Service) Issue(identity string) (string, error) {
	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.HS256, Key: s.secret}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create signer: %w", err)
	}

	now := time.Now()
	claims := models.SessionClaims{
		Issuer:    issuer,
		Subject:   identity,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}

	serialized, err := jwt.Signed(signer).Claims(claims).Serialize()
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return serialized, nil
}

// Verify checks signature and expiry and returns the subject identity.
// It fails with ErrTokenInvalid on structural or signature problems and
// ErrTokenExpired when past expiry.
func (s *Service) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrTokenInvalid
	}

	tok, err := jwt.ParseSigned(tokenString, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims := &models.SessionClaims{}
	if err := tok.Claims(s.secret, claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims.Subject == "" || claims.Issuer != issuer {
		return "", ErrTokenInvalid
	}
	if claims.ExpiresAt <= time.Now().Unix() {
		return "", ErrTokenExpired
	}

	return claims.Subject, nil
}
