// Package catalog lists and looks up the output assets owned by one
// identity.
package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"vidserve/metadata"
	"vidserve/models"
	"vidserve/namespace"
)

// ErrNotFound is returned when a referenced output does not exist in the
// identity's namespace.
var ErrNotFound = errors.New("output not found")

var allowedExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".mkv": true,
}

// AllowedOutput reports whether name carries an output extension served by
// the catalog.
func AllowedOutput(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Service joins namespace listings with sidecar metadata.
type Service struct {
	ns   *namespace.Manager
	meta *metadata.Store
}

// NewService returns a catalog service over the given namespace and
// metadata store.
func NewService(ns *namespace.Manager, meta *metadata.Store) *Service {
	return &Service{ns: ns, meta: meta}
}

// List enumerates the identity's outputs with their metadata. Entries with a
// missing sidecar carry a zero record. Order is the directory listing order;
// no sorting is guaranteed.
func (s *Service) List(identity string) ([]models.OutputAsset, error) {
	dir, err := s.ns.Resolve(identity)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	assets := make([]models.OutputAsset, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !AllowedOutput(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		record, _ := s.meta.Read(path)
		assets = append(assets, models.OutputAsset{
			Identity: identity,
			Filename: entry.Name(),
			Path:     path,
			Metadata: record,
		})
	}
	return assets, nil
}

// Get looks up a single output by filename within the identity's namespace.
// The namespace boundary is enforced even though filenames are sanitized at
// upload time.
func (s *Service) Get(identity, filename string) (models.OutputAsset, error) {
	dir, err := s.ns.Resolve(identity)
	if err != nil {
		return models.OutputAsset{}, err
	}

	path := filepath.Join(dir, filename)
	if !s.ns.Within(identity, path) {
		return models.OutputAsset{}, ErrNotFound
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return models.OutputAsset{}, ErrNotFound
	}

	record, _ := s.meta.Read(path)
	return models.OutputAsset{
		Identity: identity,
		Filename: filename,
		Path:     path,
		Metadata: record,
	}, nil
}
