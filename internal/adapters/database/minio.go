package database

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient archives completed-poll results snapshots in object storage.
type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient creates a new MinIO client
func NewMinIOClient(endpoint, accessKey, secretKey, bucket string) (*MinIOClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false, // Set to true if using HTTPS
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	// Check if bucket exists, create if not
	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOClient{
		client: client,
		bucket: bucket,
	}, nil
}

// ArchiveResults stores a results snapshot under results/<poll uuid>.json.
// Re-archiving the same poll overwrites the object, which is harmless since
// completion fires once and the snapshot is final.
func (m *MinIOClient) ArchiveResults(ctx context.Context, pollPublicID string, snapshot []byte) error {
	objectName := fmt.Sprintf("results/%s.json", pollPublicID)
	_, err := m.client.PutObject(ctx, m.bucket, objectName,
		bytes.NewReader(snapshot), int64(len(snapshot)), minio.PutObjectOptions{
			ContentType: "application/json",
		})
	if err != nil {
		return fmt.Errorf("failed to archive results snapshot: %w", err)
	}
	return nil
}
