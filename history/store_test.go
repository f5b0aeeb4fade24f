package history

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndList(t *testing.T) {
	s := newTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"a_720p_30fps.mp4", "b_720p_30fps.mp4", "c_720p_30fps.mp4"} {
		rec := Record{
			Identity:  "alice",
			Filename:  name,
			Status:    StatusSuccess,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.Add(rec); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	records, err := s.List("alice")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	// Newest first.
	if records[0].Filename != "c_720p_30fps.mp4" || records[2].Filename != "a_720p_30fps.mp4" {
		t.Errorf("Expected newest-first order, got %s .. %s", records[0].Filename, records[2].Filename)
	}
}

func TestListIsolation(t *testing.T) {
	s := newTestStore(t)
	if err := s.Add(Record{Identity: "alice", Filename: "a.mp4", Status: StatusSuccess}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Add(Record{Identity: "bob", Filename: "b.mp4", Status: StatusFailed, Error: "boom"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	records, err := s.List("alice")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0].Identity != "alice" {
		t.Errorf("Expected only alice's records, got %+v", records)
	}
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)
	records, err := s.List("nobody")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %+v", records)
	}
}

func TestAddDefaultsTimestamp(t *testing.T) {
	s := newTestStore(t)
	before := time.Now()
	if err := s.Add(Record{Identity: "alice", Filename: "a.mp4", Status: StatusSuccess}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	records, err := s.List("alice")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Timestamp.Before(before.Add(-time.Second)) {
		t.Errorf("Expected timestamp to default to now, got %v", records[0].Timestamp)
	}
}

func TestCleanupOldRecords(t *testing.T) {
	s := newTestStore(t)

	old := Record{Identity: "alice", Filename: "old.mp4", Status: StatusSuccess, Timestamp: time.Now().Add(-48 * time.Hour)}
	fresh := Record{Identity: "alice", Filename: "fresh.mp4", Status: StatusSuccess, Timestamp: time.Now()}
	if err := s.Add(old); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Add(fresh); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := s.CleanupOldRecords(24 * time.Hour); err != nil {
		t.Fatalf("CleanupOldRecords failed: %v", err)
	}

	records, err := s.List("alice")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0].Filename != "fresh.mp4" {
		t.Errorf("Expected only the fresh record to survive, got %+v", records)
	}
}
