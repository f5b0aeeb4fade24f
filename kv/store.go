// Package kv is a small wrapper around a Pebble DB instance shared by the
// credential and history stores.
package kv

import (
	"errors"
	"strings"

	"github.com/cockroachdb/pebble"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("kv: key not found")

// Store wraps one pebble database.
type Store struct {
	db   *pebble.DB
	path string
}

// Open opens (or creates) a pebble DB at the given path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

// Set stores value under key with a synced write.
func (s *Store) Set(key string, value []byte) error {
	return s.db.Set([]byte(key), value, pebble.Sync)
}

// Get returns a copy of the value for key, or ErrNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	value, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Delete removes key from the store.
func (s *Store) Delete(key string) error {
	return s.db.Delete([]byte(key), pebble.Sync)
}

// Scan calls fn for every key with the given prefix, in key order. The value
// passed to fn is only valid for the duration of the call.
func (s *Store) Scan(prefix string, fn func(key string, value []byte) error) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		key := string(iter.Key())
		if !strings.HasPrefix(key, prefix) {
			break
		}
		if err := fn(key, iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Close closes the underlying DB.
func (s *Store) Close() error {
	return s.db.Close()
}
