// Package namespace maps a validated identity to its isolated storage roots.
// All path construction for identity-scoped files goes through the Manager;
// nothing else concatenates storage paths.
package namespace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidIdentity is returned for identities that cannot safely name a
// directory.
var ErrInvalidIdentity = errors.New("invalid identity")

// Manager owns the upload and output arenas. Each identity gets one
// subdirectory per arena, created on first use.
type Manager struct {
	outputRoot string
	uploadRoot string
}

// NewManager returns a Manager rooted at the given directories.
func NewManager(outputRoot, uploadRoot string) *Manager {
	return &Manager{outputRoot: outputRoot, uploadRoot: uploadRoot}
}

// Resolve returns the output directory for identity, creating it if absent.
func (m *Manager) Resolve(identity string) (string, error) {
	return m.resolve(m.outputRoot, identity)
}

// ResolveUpload returns the saved-input directory for identity, creating it
// if absent.
func (m *Manager) ResolveUpload(identity string) (string, error) {
	return m.resolve(m.uploadRoot, identity)
}

func (m *Manager) resolve(root, identity string) (string, error) {
	if !ValidIdentity(identity) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentity, identity)
	}
	dir := filepath.Join(root, identity)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create namespace for %s: %w", identity, err)
	}
	return dir, nil
}

// Within reports whether candidate resolves under identity's output root.
// This is the isolation boundary for every download and catalog lookup; it
// is enforced even though canonical filenames are already sanitized.
func (m *Manager) Within(identity, candidate string) bool {
	if !ValidIdentity(identity) {
		return false
	}
	root, err := filepath.Abs(filepath.Join(m.outputRoot, identity))
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ValidIdentity reports whether identity can safely name a namespace
// directory: non-empty, no separators, characters limited to
// [A-Za-z0-9_.-], and not a relative-path special name.
func ValidIdentity(identity string) bool {
	if identity == "" || identity == "." || identity == ".." {
		return false
	}
	for _, r := range identity {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '.' || r == '-':
		default:
			return false
		}
	}
	return true
}
