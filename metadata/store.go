// Package metadata persists the sidecar record describing an output asset.
// The sidecar lives at the output path plus ".json" and is advisory: readers
// degrade to an empty record rather than fail.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/renameio/v2"

	"vidserve/models"
)

// Suffix is appended to an output filename to locate its sidecar.
const Suffix = ".json"

// Store reads and writes sidecar records keyed by output path.
type Store struct{}

// NewStore returns a sidecar store.
func NewStore() *Store {
	return &Store{}
}

// Write computes the current size of the file at outputPath and replaces its
// sidecar. The write goes through a temp file and rename so a concurrent
// reader never observes a partial record; a later write for the same path
// wins, which is what makes repeated encodes idempotent.
func (s *Store) Write(outputPath string, p models.CanonicalParams) (models.MetadataRecord, error) {
	info, err := os.Stat(outputPath)
	if err != nil {
		return models.MetadataRecord{}, fmt.Errorf("failed to stat output %s: %w", outputPath, err)
	}

	record := models.MetadataRecord{
		Resolution: p.Resolution(),
		Framerate:  p.Framerate,
		Format:     p.Format,
		SizeKB:     info.Size() / 1024,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return models.MetadataRecord{}, fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := renameio.WriteFile(outputPath+Suffix, data, 0o644); err != nil {
		return models.MetadataRecord{}, fmt.Errorf("failed to write metadata sidecar: %w", err)
	}
	return record, nil
}

// Read returns the sidecar record for outputPath. A missing or unreadable
// sidecar yields a zero record and false, never an error.
func (s *Store) Read(outputPath string) (models.MetadataRecord, bool) {
	data, err := os.ReadFile(outputPath + Suffix)
	if err != nil {
		return models.MetadataRecord{}, false
	}
	var record models.MetadataRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return models.MetadataRecord{}, false
	}
	return record, true
}
