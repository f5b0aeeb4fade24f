package archive

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"vidserve/logger"
)

// storeS3 uploads the object via the S3 upload manager using static
// credentials from the archive configuration.
func (r *Replicator) storeS3(ctx context.Context, key string, reader io.Reader) error {
	creds := credentials.NewStaticCredentialsProvider(r.cfg.S3AccessKey, r.cfg.S3SecretKey, "")
	client := s3.New(s3.Options{
		Region:      r.cfg.S3Region,
		Credentials: creds,
	})

	uploader := manager.NewUploader(client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(r.cfg.S3Bucket),
		Key:    aws.String(key),
		Body:   reader,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s to bucket %s: %w", key, r.cfg.S3Bucket, err)
	}

	logger.Infof("Archived '%s' to s3 bucket '%s'", key, r.cfg.S3Bucket)
	return nil
}
