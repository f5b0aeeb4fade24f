package kv

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGetDelete(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("alpha", []byte("one")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get("alpha")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "one" {
		t.Errorf("Expected value %q, got %q", "one", got)
	}

	if err := s.Delete("alpha"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get("alpha"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestScanPrefix(t *testing.T) {
	s := openTestStore(t)

	for _, key := range []string{"alice/1", "alice/2", "bob/1"} {
		if err := s.Set(key, []byte(key)); err != nil {
			t.Fatalf("Set %s failed: %v", key, err)
		}
	}

	var seen []string
	err := s.Scan("alice/", func(key string, value []byte) error {
		seen = append(seen, key)
		return nil
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("Expected 2 keys, got %d: %v", len(seen), seen)
	}
	if seen[0] != "alice/1" || seen[1] != "alice/2" {
		t.Errorf("Unexpected scan order: %v", seen)
	}
}
