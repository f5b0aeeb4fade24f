// Package archive replicates finished outputs to an optional remote storage
// backend. Archival is best-effort: the local namespace stays the source of
// truth and callers log archive errors instead of failing the encode.
package archive

import (
	"context"
	"fmt"
	"io"

	"vidserve/config"
)

// Replicator writes objects to the configured backend. The zero backend is a
// disabled replicator.
type Replicator struct {
	cfg config.ArchiveConfig
}

// New returns a Replicator for the given archive configuration.
func New(cfg config.ArchiveConfig) *Replicator {
	return &Replicator{cfg: cfg}
}

// Enabled reports whether a backend is configured.
func (r *Replicator) Enabled() bool {
	return r.cfg.Backend != ""
}

// Store writes the object named key (a namespace-relative path such as
// "alice/clip_720p_30fps.mp4") to the configured backend.
func (r *Replicator) Store(ctx context.Context, key string, reader io.Reader) error {
	switch r.cfg.Backend {
	case "s3":
		if err := r.storeS3(ctx, key, reader); err != nil {
			return fmt.Errorf("failed to archive to S3: %w", err)
		}
	case "gcs":
		if err := r.storeGCS(ctx, key, reader); err != nil {
			return fmt.Errorf("failed to archive to GCS: %w", err)
		}
	case "sftp":
		if err := r.storeSFTP(ctx, key, reader); err != nil {
			return fmt.Errorf("failed to archive to SFTP: %w", err)
		}
	default:
		return fmt.Errorf("unknown archive backend: %s", r.cfg.Backend)
	}
	return nil
}
