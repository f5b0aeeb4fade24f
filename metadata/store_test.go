package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"vidserve/models"
)

func writeOutput(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip_720p_30fps.mp4")
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("Failed to write output file: %v", err)
	}
	return path
}

func TestWriteAndRead(t *testing.T) {
	s := NewStore()
	path := writeOutput(t, 3072)

	p := models.CanonicalParams{Quality: "720", Scale: "1280:720", Framerate: "30", Format: "mp4"}
	written, err := s.Write(path, p)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if written.Resolution != "720p" || written.Framerate != "30" || written.Format != "mp4" {
		t.Errorf("Unexpected record: %+v", written)
	}
	if written.SizeKB != 3 {
		t.Errorf("Expected size 3 KB, got %d", written.SizeKB)
	}

	read, ok := s.Read(path)
	if !ok {
		t.Fatal("Expected sidecar to exist")
	}
	if read != written {
		t.Errorf("Read %+v does not match written %+v", read, written)
	}
}

func TestSidecarShape(t *testing.T) {
	s := NewStore()
	path := writeOutput(t, 2048)

	p := models.CanonicalParams{Quality: "1080", Scale: "1920:1080", Framerate: "60", Format: "mkv"}
	if _, err := s.Write(path, p); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path + Suffix)
	if err != nil {
		t.Fatalf("Failed to read sidecar: %v", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Sidecar is not valid JSON: %v", err)
	}
	for _, key := range []string{"resolution", "framerate", "format", "size_kb"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Sidecar missing key %q", key)
		}
	}
	if raw["resolution"] != "1080p" {
		t.Errorf("Expected resolution 1080p, got %v", raw["resolution"])
	}
}

func TestReadMissing(t *testing.T) {
	s := NewStore()
	record, ok := s.Read(filepath.Join(t.TempDir(), "nope.mp4"))
	if ok {
		t.Error("Expected ok=false for missing sidecar")
	}
	if record != (models.MetadataRecord{}) {
		t.Errorf("Expected zero record, got %+v", record)
	}
}

func TestReadCorrupt(t *testing.T) {
	s := NewStore()
	path := writeOutput(t, 10)
	if err := os.WriteFile(path+Suffix, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write corrupt sidecar: %v", err)
	}
	if _, ok := s.Read(path); ok {
		t.Error("Expected ok=false for corrupt sidecar")
	}
}

func TestWriteMissingOutput(t *testing.T) {
	s := NewStore()
	p := models.CanonicalParams{Quality: "720", Scale: "1280:720", Framerate: "30", Format: "mp4"}
	if _, err := s.Write(filepath.Join(t.TempDir(), "gone.mp4"), p); err == nil {
		t.Error("Expected error when output file is missing")
	}
}

func TestWriteOverwrites(t *testing.T) {
	s := NewStore()
	path := writeOutput(t, 1024)

	p := models.CanonicalParams{Quality: "720", Scale: "1280:720", Framerate: "30", Format: "mp4"}
	if _, err := s.Write(path, p); err != nil {
		t.Fatalf("First write failed: %v", err)
	}

	if err := os.WriteFile(path, make([]byte, 5120), 0o644); err != nil {
		t.Fatalf("Failed to grow output file: %v", err)
	}
	if _, err := s.Write(path, p); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	record, ok := s.Read(path)
	if !ok {
		t.Fatal("Expected sidecar to exist")
	}
	if record.SizeKB != 5 {
		t.Errorf("Expected updated size 5 KB, got %d", record.SizeKB)
	}
}
