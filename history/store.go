// Package history keeps a per-identity log of encode outcomes so failures
// stay diagnosable after the request that triggered them is gone.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"vidserve/kv"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Record is one encode outcome.
type Record struct {
	Identity   string    `json:"identity"`
	Filename   string    `json:"file"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	Resolution string    `json:"resolution,omitempty"`
	Framerate  string    `json:"framerate,omitempty"`
	Format     string    `json:"format,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Store is a pebble-backed outcome log keyed by identity and time.
type Store struct {
	kv *kv.Store
}

// Open opens the history store at the given pebble path.
func Open(path string) (*Store, error) {
	db, err := kv.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return &Store{kv: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.kv.Close()
}

// Add appends a record. Keys embed a zero-padded nanosecond timestamp so a
// prefix scan returns records in chronological order.
func (s *Store) Add(rec Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal history record: %w", err)
	}
	key := fmt.Sprintf("%s/%020d", rec.Identity, rec.Timestamp.UnixNano())
	return s.kv.Set(key, data)
}

// List returns the identity's records, newest first.
func (s *Store) List(identity string) ([]Record, error) {
	var records []Record
	err := s.kv.Scan(identity+"/", func(key string, value []byte) error {
		var rec Record
		if err := json.Unmarshal(value, &rec); err != nil {
			return nil // skip unreadable records
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// CleanupOldRecords removes records older than maxAge across all identities.
func (s *Store) CleanupOldRecords(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)

	var stale []string
	err := s.kv.Scan("", func(key string, value []byte) error {
		var rec Record
		if err := json.Unmarshal(value, &rec); err != nil {
			return nil
		}
		if rec.Timestamp.Before(cutoff) {
			stale = append(stale, key)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, key := range stale {
		if err := s.kv.Delete(key); err != nil {
			return fmt.Errorf("failed to delete old history record: %w", err)
		}
	}
	return nil
}
