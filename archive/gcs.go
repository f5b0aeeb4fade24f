package archive

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"vidserve/logger"
)

// storeGCS uploads the object to Google Cloud Storage using the
// base64-encoded service account key from the archive configuration.
func (r *Replicator) storeGCS(ctx context.Context, key string, reader io.Reader) error {
	credentialsJSON, err := base64.StdEncoding.DecodeString(r.cfg.GCSCredentialsJSON)
	if err != nil {
		return fmt.Errorf("failed to decode GCS credentials: %w", err)
	}

	client, err := storage.NewClient(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return fmt.Errorf("storage.NewClient: %w", err)
	}
	defer client.Close()

	wc := client.Bucket(r.cfg.GCSBucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(wc, reader); err != nil {
		return fmt.Errorf("io.Copy: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %w", err)
	}

	logger.Infof("Archived '%s' to gcs bucket '%s'", key, r.cfg.GCSBucket)
	return nil
}
