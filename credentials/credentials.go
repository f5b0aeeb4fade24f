// Package credentials validates (identity, secret) pairs against bcrypt
// hashes held in a pebble store. Identity creation is out-of-band; Put and
// Seed exist for provisioning, nothing exposes them over HTTP.
package credentials

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"vidserve/kv"
	"vidserve/logger"
)

// Store is the credential backend. It satisfies the narrow validate
// capability the auth handlers depend on, so the backing store is swappable.
type Store struct {
	kv *kv.Store
}

// Open opens the credential store at the given pebble path.
func Open(path string) (*Store, error) {
	db, err := kv.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credentials store: %w", err)
	}
	return &Store{kv: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.kv.Close()
}

// Put stores (or replaces) the credential for identity.
func (s *Store) Put(identity, secret string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash secret: %w", err)
	}
	return s.kv.Set(identity, hash)
}

// Validate reports whether the secret matches the stored credential for
// identity. Unknown identities and wrong secrets are indistinguishable.
func (s *Store) Validate(identity, secret string) bool {
	hash, err := s.kv.Get(identity)
	if err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(secret)) == nil
}

// Delete removes the credential for identity.
func (s *Store) Delete(identity string) error {
	return s.kv.Delete(identity)
}

// Seed provisions credentials from a "user:secret,user:secret" spec.
// Existing identities are left untouched so seeding is idempotent across
// restarts.
func (s *Store) Seed(spec string) error {
	if spec == "" {
		return nil
	}
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		identity, secret, ok := strings.Cut(pair, ":")
		if !ok || identity == "" || secret == "" {
			return fmt.Errorf("invalid seed entry %q", pair)
		}
		if _, err := s.kv.Get(identity); err == nil {
			continue
		}
		if err := s.Put(identity, secret); err != nil {
			return err
		}
		logger.Infof("Provisioned credentials for %s", identity)
	}
	return nil
}
